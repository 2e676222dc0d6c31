// Package vault implements an encrypted, single-file credential store.
//
// The on-disk container is a small JSON document holding the key
// derivation parameters and the AES-256-GCM sealed payload; the payload
// itself is the JSON-encoded credential set. Everything that reads or
// writes the vault file goes through Create, Open and Reseal, which keep
// two guarantees: the file is only ever replaced atomically, and failure
// to decrypt is reported as a single indistinguishable error.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ContainerVersion is the current on-disk format version
	ContainerVersion = 1

	// FileMode is the permission set on the vault file (owner read/write)
	FileMode = 0o600
	// DirMode is the permission set on created vault directories
	DirMode = 0o700
)

// Container is the on-disk vault layout. Binary fields are base64-encoded
// by encoding/json, which keeps the file inspectable without exposing
// anything beyond sizes and KDF parameters.
type Container struct {
	Version    int    `json:"version"`
	Iterations int    `json:"iterations"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
	Tag        []byte `json:"tag"`
}

// Vault is an open handle to a vault file. It carries the path and KDF
// parameters needed to reseal; it never holds the derived key or any
// plaintext between operations.
type Vault struct {
	Path       string
	Salt       []byte
	Iterations int
}

// CreateOptions controls vault creation
type CreateOptions struct {
	// Iterations overrides DefaultIterations when positive
	Iterations int
	// Force replaces an existing vault file instead of failing
	Force bool
}

// Create initializes a new vault file at path, sealed under the given
// passphrase, containing an empty credential set. It fails with
// ErrVaultExists if a vault is already present, unless opts.Force is set.
func Create(path string, passphrase []byte, opts CreateOptions) (*Vault, *Store, error) {
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < MinIterations {
		return nil, nil, fmt.Errorf("iteration count %d below minimum %d", iterations, MinIterations)
	}

	if _, err := os.Stat(path); err == nil {
		if !opts.Force {
			return nil, nil, ErrVaultExists
		}
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to check vault path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return nil, nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, nil, err
	}

	v := &Vault{
		Path:       path,
		Salt:       salt,
		Iterations: iterations,
	}
	store := NewStore()
	if err := v.Reseal(store, passphrase); err != nil {
		return nil, nil, err
	}
	return v, store, nil
}

// Open reads the vault file at path, derives the key from the passphrase
// and the stored KDF parameters, and decrypts the credential set. A wrong
// passphrase and a corrupted or tampered file both return
// ErrWrongPassphraseOrCorrupt; no partial data is ever returned.
func Open(path string, passphrase []byte) (*Vault, *Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrVaultNotFound
		}
		return nil, nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil, ErrWrongPassphraseOrCorrupt
	}
	if c.Version != ContainerVersion {
		return nil, nil, ErrWrongPassphraseOrCorrupt
	}
	if c.Iterations < 1 || len(c.Salt) < MinSaltSize {
		return nil, nil, ErrWrongPassphraseOrCorrupt
	}

	key, err := DeriveKey(passphrase, c.Salt, c.Iterations)
	if err != nil {
		return nil, nil, ErrWrongPassphraseOrCorrupt
	}
	defer Zeroize(key)

	plaintext, err := Unseal(key, c.Nonce, c.Ciphertext, c.Tag)
	if err != nil {
		return nil, nil, err
	}
	defer Zeroize(plaintext)

	store := NewStore()
	if err := json.Unmarshal(plaintext, store); err != nil {
		return nil, nil, ErrWrongPassphraseOrCorrupt
	}

	v := &Vault{
		Path:       path,
		Salt:       c.Salt,
		Iterations: c.Iterations,
	}
	return v, store, nil
}

// Reseal encrypts the credential set under the vault's stored KDF
// parameters with a fresh nonce and atomically replaces the vault file.
// If anything fails before the final rename, the previous file is left
// untouched.
func (v *Vault) Reseal(store *Store, passphrase []byte) error {
	plaintext, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	defer Zeroize(plaintext)

	key, err := DeriveKey(passphrase, v.Salt, v.Iterations)
	if err != nil {
		return err
	}
	defer Zeroize(key)

	nonce, err := GenerateNonce()
	if err != nil {
		return err
	}

	ciphertext, tag, err := Seal(key, nonce, plaintext)
	if err != nil {
		return err
	}

	c := Container{
		Version:    ContainerVersion,
		Iterations: v.Iterations,
		Salt:       v.Salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
		Tag:        tag,
	}
	encoded, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode container: %w", err)
	}

	return writeFileAtomic(v.Path, encoded, FileMode)
}

// writeFileAtomic writes data to a temp file in the target directory,
// syncs it, then renames it over path. Readers either see the old file or
// the complete new one, never a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".keep-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace vault file: %w", err)
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry after a rename. Best effort: some
// platforms do not support fsync on directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	d.Sync()
}
