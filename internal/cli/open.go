package cli

import (
	"errors"
	"fmt"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

// openVault prompts for the passphrase and opens the vault at the
// configured path. There is no cached session: every command pays the key
// derivation cost and forgets the key when it exits.
//
// The returned passphrase buffer is needed for resealing; the caller must
// Zeroize it and Wipe the store before returning.
func openVault(conf *config.Config) (*vault.Vault, *vault.Store, []byte, error) {
	path := resolveVaultPath(conf)

	passphrase, err := PromptPassphrase("Enter passphrase: ")
	if err != nil {
		return nil, nil, nil, err
	}

	v, store, err := vault.Open(path, passphrase)
	if err != nil {
		vault.Zeroize(passphrase)
		if errors.Is(err, vault.ErrVaultNotFound) {
			return nil, nil, nil, fmt.Errorf("%w at %s (run 'keep create' first)", err, path)
		}
		return nil, nil, nil, err
	}
	return v, store, passphrase, nil
}
