package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	internalcrypto "github.com/keep-cli/keep/internal/crypto"
	"github.com/keep-cli/keep/internal/vault"
)

type rotateOptions struct {
	length int
	show   bool
	copyIt bool
	ttl    int
}

var rotateCmd = newRotateCommand(nil)

func newRotateCommand(conf *config.Config) *cobra.Command {
	opts := &rotateOptions{length: 20, ttl: -1}

	cmd := &cobra.Command{
		Use:   "rotate <site>",
		Short: "Regenerate the secret for an existing entry",
		Long: `Replace the secret of an existing entry with a freshly generated
one, keeping the username. The new secret is copied to the clipboard by
default so you can paste it into the site's password-change form.

Example:
  keep rotate github
  keep rotate github --length 32
  keep rotate github --show`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRotate(cmd, args[0], opts, conf)
		},
	}

	cmd.Flags().IntVarP(&opts.length, "length", "l", opts.length, "Length of the new secret")
	cmd.Flags().BoolVarP(&opts.show, "show", "s", false, "Print the new secret instead of copying it")
	cmd.Flags().BoolVarP(&opts.copyIt, "copy", "c", false, "Copy the new secret to the clipboard")
	cmd.Flags().IntVar(&opts.ttl, "ttl", opts.ttl, "Clipboard clear timeout in seconds (-1 uses the config default)")
	cmd.MarkFlagsMutuallyExclusive("copy", "show")

	return cmd
}

// NewRotateCommand creates a rotate command for testing.
func NewRotateCommand(conf *config.Config) *cobra.Command {
	return newRotateCommand(conf)
}

func runRotate(cmd *cobra.Command, site string, opts *rotateOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	if opts.length <= 0 {
		return fmt.Errorf("--length must be positive")
	}

	v, store, passphrase, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)
	defer store.Wipe()

	entry, err := store.Get(site)
	if err != nil {
		return fmt.Errorf("%w: %s", err, site)
	}

	newSecret, err := internalcrypto.GenerateSecret(opts.length, internalcrypto.CharsetAlnumSpecial)
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if err := store.Add(site, entry.Username, []byte(newSecret), true); err != nil {
		return err
	}
	if err := v.Reseal(store, passphrase); err != nil {
		return err
	}

	if opts.show {
		successf(out, "Rotated %s", site)
		return writeOutput(out, "%s\n", newSecret)
	}

	if !clipboardIsAvailable() {
		return fmt.Errorf("clipboard not available, use --show to print the new secret")
	}
	return handoffToClipboard(out, fmt.Sprintf("New secret for %s", site), newSecret, opts.ttl, conf)
}
