package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters
const (
	// KeySize is the derived key length in bytes (AES-256)
	KeySize = 32
	// SaltSize is the length of newly generated salts in bytes
	SaltSize = 32
	// MinSaltSize is the shortest salt accepted when opening an existing vault
	MinSaltSize = 16
	// DefaultIterations is the PBKDF2-HMAC-SHA256 iteration count for new vaults.
	// Raising it slows both legitimate opens and offline guessing; it is stored
	// in the container so existing vaults keep working when the default moves.
	DefaultIterations = 480_000
	// MinIterations is the lowest iteration count accepted for new vaults
	MinIterations = 480_000
)

// DeriveKey stretches a passphrase into a KeySize-byte encryption key using
// PBKDF2-HMAC-SHA256. The same passphrase, salt and iteration count always
// produce the same key; the caller is responsible for zeroizing the result.
func DeriveKey(passphrase, salt []byte, iterations int) ([]byte, error) {
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("salt must be at least %d bytes, got %d", MinSaltSize, len(salt))
	}
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	return pbkdf2.Key(passphrase, salt, iterations, KeySize, sha256.New), nil
}

// GenerateSalt returns a new random salt from crypto/rand.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
