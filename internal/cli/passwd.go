package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

var passwdCmd = newPasswdCommand(nil)

func newPasswdCommand(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the vault passphrase",
		Long: `Change the passphrase protecting the vault.

The vault is opened with the current passphrase, a fresh salt is
generated, and everything is re-encrypted under the new passphrase in
one atomic write. This cannot be undone, so make sure you remember the
new passphrase.

Example:
  keep passwd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswd(cmd, conf)
		},
	}
	return cmd
}

// NewPasswdCommand creates a passwd command for testing.
func NewPasswdCommand(conf *config.Config) *cobra.Command {
	return newPasswdCommand(conf)
}

func runPasswd(cmd *cobra.Command, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	v, store, current, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(current)
	defer store.Wipe()

	next, err := PromptNewPassphrase("New passphrase: ")
	if err != nil {
		return err
	}
	defer vault.Zeroize(next)

	// Fresh salt so the new passphrase never shares derivation inputs
	// with the old one
	salt, err := vault.GenerateSalt()
	if err != nil {
		return err
	}
	v.Salt = salt

	if err := v.Reseal(store, next); err != nil {
		return fmt.Errorf("failed to re-encrypt vault: %w", err)
	}

	successf(out, "Passphrase changed")
	return nil
}
