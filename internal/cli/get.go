package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

type getOptions struct {
	field string
	show  bool
	ttl   int
}

var getCmd = newGetCommand(nil)

func newGetCommand(conf *config.Config) *cobra.Command {
	opts := &getOptions{field: "secret", ttl: -1}

	cmd := &cobra.Command{
		Use:   "get <site>",
		Short: "Retrieve an entry from the vault",
		Long: `Retrieve an entry and hand over the requested field.

By default the secret goes to the clipboard and is cleared after the
configured timeout; the terminal never sees it. Use --show to print it
to stdout instead. Non-sensitive fields print directly.

Example:
  keep get github                    # Copy secret to clipboard
  keep get github --show             # Print secret to stdout
  keep get github --field username   # Print the username
  keep get github --ttl 10           # Clear clipboard after 10 seconds`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], opts, conf)
		},
	}

	cmd.Flags().StringVar(&opts.field, "field", opts.field, "Field to retrieve (secret|username)")
	cmd.Flags().BoolVar(&opts.show, "show", false, "Print the secret to stdout instead of copying")
	cmd.Flags().IntVar(&opts.ttl, "ttl", opts.ttl, "Clipboard clear timeout in seconds (-1 uses the config default)")

	return cmd
}

// NewGetCommand creates a get command for testing.
func NewGetCommand(conf *config.Config) *cobra.Command {
	return newGetCommand(conf)
}

func runGet(cmd *cobra.Command, site string, opts *getOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	field := strings.ToLower(opts.field)
	switch field {
	case "secret", "username":
	default:
		return fmt.Errorf("invalid field: %s (valid: secret, username)", opts.field)
	}

	_, store, passphrase, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)
	defer store.Wipe()

	entry, err := store.Get(site)
	if err != nil {
		return fmt.Errorf("%w: %s", err, site)
	}

	if field == "username" {
		if entry.Username == "" {
			return writeOutput(out, "No username stored for %s\n", site)
		}
		return writeOutput(out, "%s\n", entry.Username)
	}

	if opts.show {
		warnf(cmd.ErrOrStderr(), "printing secret to stdout")
		return writeOutput(out, "%s\n", string(entry.Secret))
	}

	if !clipboardIsAvailable() {
		return fmt.Errorf("clipboard not available, use --show to print instead")
	}
	return handoffToClipboard(out, fmt.Sprintf("Secret for %s", site), string(entry.Secret), opts.ttl, conf)
}
