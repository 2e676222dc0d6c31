package vault

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

// fuzzContainerBytes seals a small store with a reduced iteration count and
// returns the raw container file, for seeding the corpus with a valid input.
func fuzzContainerBytes(tb testing.TB, passphrase []byte) []byte {
	tb.Helper()

	salt, err := GenerateSalt()
	if err != nil {
		tb.Fatalf("GenerateSalt: %v", err)
	}
	v := &Vault{
		Path:       filepath.Join(tb.TempDir(), "seed.vault"),
		Salt:       salt,
		Iterations: testIterations,
	}
	store := NewStore()
	if err := store.Add("github.com", "octocat", []byte("hunter2"), false); err != nil {
		tb.Fatalf("Add: %v", err)
	}
	if err := v.Reseal(store, passphrase); err != nil {
		tb.Fatalf("Reseal: %v", err)
	}
	data, err := os.ReadFile(v.Path)
	if err != nil {
		tb.Fatalf("ReadFile: %v", err)
	}
	return data
}

// FuzzOpen feeds arbitrary bytes to Open as a container file. Whatever the
// input, Open must not panic, must not leak the passphrase through the
// error, and must only succeed on a genuinely valid container.
func FuzzOpen(f *testing.F) {
	passphrase := []byte("fuzz passphrase")
	valid := fuzzContainerBytes(f, passphrase)

	f.Add(valid)
	f.Add(valid[:len(valid)/2])
	f.Add([]byte("{}"))
	f.Add([]byte("not json at all"))
	f.Add([]byte(""))
	f.Add([]byte(`{"version":1,"iterations":1000,"salt":"","nonce":"","ciphertext":"","tag":""}`))
	f.Add([]byte(`{"version":99,"iterations":1000}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		// A fuzzed container controls the iteration count fed to PBKDF2;
		// cap it so mutated inputs cannot stall the run.
		var c Container
		if err := json.Unmarshal(data, &c); err == nil && c.Iterations > 10_000 {
			t.Skip("iteration count too large for fuzzing")
		}

		path := filepath.Join(t.TempDir(), "fuzz.vault")
		if err := os.WriteFile(path, data, FileMode); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		v, store, err := Open(path, passphrase)
		if err != nil {
			if strings.Contains(err.Error(), string(passphrase)) {
				t.Fatalf("error leaks passphrase: %v", err)
			}
			return
		}

		// Success means the AEAD tag verified, so the payload must decode
		// to the seeded store.
		defer store.Wipe()
		if v.Iterations < 1 {
			t.Fatalf("opened vault with iterations %d", v.Iterations)
		}
		entry, err := store.Get("github.com")
		if err != nil {
			t.Fatalf("opened container missing seeded entry: %v", err)
		}
		if !bytes.Equal(entry.Secret, []byte("hunter2")) {
			t.Fatalf("seeded secret corrupted on open")
		}
	})
}

// FuzzSealUnseal round-trips arbitrary plaintext through the AEAD and
// verifies that any single-byte tamper is rejected as corrupt.
func FuzzSealUnseal(f *testing.F) {
	f.Add([]byte("credential payload"))
	f.Add([]byte(""))
	f.Add([]byte{0x00, 0xff, 0x00, 0xff})
	f.Add(bytes.Repeat([]byte("a"), 4096))

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		f.Fatalf("rand.Read: %v", err)
	}

	f.Fuzz(func(t *testing.T, plaintext []byte) {
		if len(plaintext) > 1<<20 {
			t.Skip("plaintext too large")
		}

		nonce, err := GenerateNonce()
		if err != nil {
			t.Fatalf("GenerateNonce: %v", err)
		}
		ciphertext, tag, err := Seal(key, nonce, plaintext)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}

		got, err := Unseal(key, nonce, ciphertext, tag)
		if err != nil {
			t.Fatalf("Unseal of untampered data: %v", err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Fatalf("roundtrip mismatch: %d bytes in, %d out", len(plaintext), len(got))
		}

		if len(ciphertext) > 0 {
			tampered := bytes.Clone(ciphertext)
			tampered[0] ^= 0x01
			if _, err := Unseal(key, nonce, tampered, tag); !errors.Is(err, ErrWrongPassphraseOrCorrupt) {
				t.Fatalf("tampered ciphertext: got %v, want ErrWrongPassphraseOrCorrupt", err)
			}
		}

		badTag := bytes.Clone(tag)
		badTag[0] ^= 0x01
		if _, err := Unseal(key, nonce, ciphertext, badTag); !errors.Is(err, ErrWrongPassphraseOrCorrupt) {
			t.Fatalf("tampered tag: got %v, want ErrWrongPassphraseOrCorrupt", err)
		}
	})
}

// FuzzParseFilterTokens checks the token invariants hold for arbitrary
// filter strings: tokens come back lower-cased, non-empty, and free of
// delimiter characters, and matching never panics.
func FuzzParseFilterTokens(f *testing.F) {
	f.Add("github")
	f.Add("github+work")
	f.Add("  spaced   tokens  ")
	f.Add("++++")
	f.Add("MiXeD+CaSe")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		tokens := ParseFilterTokens(raw)
		for _, token := range tokens {
			if token == "" {
				t.Fatal("empty token")
			}
			if token != strings.ToLower(token) {
				t.Fatalf("token %q not lower-cased", token)
			}
			if strings.ContainsRune(token, '+') {
				t.Fatalf("token %q contains delimiter", token)
			}
			if strings.ContainsFunc(token, unicode.IsSpace) {
				t.Fatalf("token %q contains whitespace", token)
			}
		}

		entry := Entry{Site: "github.com", Username: "octocat"}
		MatchesFilterTokens(entry, tokens)
		if len(tokens) == 0 && !MatchesFilterTokens(entry, tokens) {
			t.Fatal("empty filter must match every entry")
		}
	})
}
