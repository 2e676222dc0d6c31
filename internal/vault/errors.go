package vault

import "errors"

// Error variables for vault operations
var (
	// ErrVaultNotFound is returned when no vault file exists at the given path
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultExists is returned when attempting to create a vault over an existing one
	ErrVaultExists = errors.New("vault already exists")
	// ErrWrongPassphraseOrCorrupt is returned when a vault cannot be decrypted.
	// A wrong passphrase and a tampered or truncated file are deliberately
	// reported as the same condition; distinguishing them would tell an
	// attacker which one they got right.
	ErrWrongPassphraseOrCorrupt = errors.New("wrong passphrase or corrupted vault")
	// ErrEntryExists is returned when adding a site that is already stored
	ErrEntryExists = errors.New("entry already exists")
	// ErrEntryNotFound is returned when the requested site is not stored
	ErrEntryNotFound = errors.New("entry not found")
)
