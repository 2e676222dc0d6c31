package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

type deleteOptions struct {
	yes bool
}

var deleteCmd = newDeleteCommand(nil)

func newDeleteCommand(conf *config.Config) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <site>",
		Short: "Delete an entry from the vault",
		Long: `Delete an entry from the vault permanently.

This cannot be undone. You will be asked to confirm unless you pass
--yes or disable confirm_destructive in the config.

Example:
  keep delete old-account
  keep delete temp-entry --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], opts, conf)
		},
	}

	cmd.Flags().BoolVar(&opts.yes, "yes", false, "Skip confirmation prompt")

	return cmd
}

// NewDeleteCommand creates a delete command for testing.
func NewDeleteCommand(conf *config.Config) *cobra.Command {
	return newDeleteCommand(conf)
}

func runDelete(cmd *cobra.Command, site string, opts *deleteOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	v, store, passphrase, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)
	defer store.Wipe()

	// Fail on a missing entry before asking for confirmation
	if _, err := store.Get(site); err != nil {
		if errors.Is(err, vault.ErrEntryNotFound) {
			return fmt.Errorf("%w: %s", err, site)
		}
		return err
	}

	confirmNeeded := !opts.yes
	if conf != nil && !conf.ConfirmDestructive {
		confirmNeeded = false
	}
	if confirmNeeded {
		confirmed, err := PromptConfirm(fmt.Sprintf("Delete entry '%s'?", site), false)
		if err != nil {
			return err
		}
		if !confirmed {
			return writeOutput(out, "Deletion cancelled\n")
		}
	}

	if err := store.Delete(site); err != nil {
		return err
	}
	if err := v.Reseal(store, passphrase); err != nil {
		return err
	}

	successf(out, "Deleted %s", site)
	return nil
}
