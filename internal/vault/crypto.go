package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// AEAD parameters (AES-256-GCM)
const (
	// NonceSize is the GCM nonce length in bytes
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes
	TagSize = 16
)

// Seal encrypts plaintext using AES-256-GCM with the given key and nonce.
// The authentication tag is split off and returned separately so the
// container can store it as its own field. A nonce must never be reused
// with the same key; callers generate a fresh one for every seal.
func Seal(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("invalid nonce size: expected %d, got %d", NonceSize, len(nonce))
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext = sealed[:len(sealed)-TagSize]
	tag = sealed[len(sealed)-TagSize:]
	return ciphertext, tag, nil
}

// Unseal decrypts and authenticates a ciphertext produced by Seal. Any
// change to the ciphertext, tag or nonce, and any key derived from the
// wrong passphrase, yields ErrWrongPassphraseOrCorrupt with no plaintext
// and no indication of which check failed.
func Unseal(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, ErrWrongPassphraseOrCorrupt
	}

	// GCM expects ciphertext and tag concatenated
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrWrongPassphraseOrCorrupt
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size: expected %d, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// GenerateNonce creates a cryptographically secure random nonce
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Zeroize securely clears a byte slice
func Zeroize(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ZeroizeString securely clears a string by converting to bytes and zeroing
func ZeroizeString(s *string) {
	if s == nil {
		return
	}
	b := []byte(*s)
	Zeroize(b)
	*s = ""
}
