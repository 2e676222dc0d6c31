package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	internalcrypto "github.com/keep-cli/keep/internal/crypto"
	"github.com/keep-cli/keep/internal/vault"
)

type addOptions struct {
	username   string
	secretFile string
	generate   int
	show       bool
	ttl        int
	force      bool
}

var addCmd = newAddCommand(nil)

func newAddCommand(conf *config.Config) *cobra.Command {
	opts := &addOptions{ttl: -1}

	cmd := &cobra.Command{
		Use:   "add <site>",
		Short: "Add an entry to the vault",
		Long: `Add an entry to the vault under the given site name.

The secret comes from a no-echo prompt by default. Use --secret-file to
read it from a file ("-" reads stdin), or --generate to mint a random
one; a generated secret is handed to you via the clipboard unless you
pass --show. Secrets are never accepted as command-line arguments.

Example:
  keep add github --username octocat
  keep add deploy-key --secret-file key.txt
  cat token.txt | keep add api-token --secret-file -
  keep add database --username svc --generate 32`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], opts, conf)
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "Username/email for the entry")
	cmd.Flags().StringVar(&opts.secretFile, "secret-file", "", "Read secret from file (\"-\" for stdin)")
	cmd.Flags().IntVar(&opts.generate, "generate", 0, "Generate a random secret of this length instead of prompting")
	cmd.Flags().BoolVar(&opts.show, "show", false, "Print a generated secret instead of copying it")
	cmd.Flags().IntVar(&opts.ttl, "ttl", -1, "Clipboard clear timeout in seconds (-1 uses the config default)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing entry")
	cmd.MarkFlagsMutuallyExclusive("secret-file", "generate")

	return cmd
}

// NewAddCommand creates an add command for testing.
func NewAddCommand(conf *config.Config) *cobra.Command {
	return newAddCommand(conf)
}

func runAdd(cmd *cobra.Command, site string, opts *addOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	if site == "" {
		return fmt.Errorf("site name cannot be empty")
	}

	v, store, passphrase, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)
	defer store.Wipe()

	secret, generated, err := resolveSecret(cmd, site, opts)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(secret)) == 0 {
		return fmt.Errorf("secret cannot be empty")
	}

	username := opts.username
	if username == "" && opts.secretFile != "-" {
		// Skipped when stdin is the secret source: it is already consumed
		username, err = PromptInput("Username (optional): ")
		if err != nil {
			return err
		}
	}

	if err := store.Add(site, username, secret, opts.force); err != nil {
		if errors.Is(err, vault.ErrEntryExists) {
			return fmt.Errorf("%w: %s (use --force to overwrite)", err, site)
		}
		return err
	}

	if err := v.Reseal(store, passphrase); err != nil {
		return err
	}

	successf(out, "Added %s", site)

	// A generated secret was never seen by the user; hand it over now,
	// after the vault holds it safely.
	if generated {
		if opts.show {
			return writeOutput(out, "%s\n", string(secret))
		}
		if !clipboardIsAvailable() {
			return fmt.Errorf("clipboard not available, pass --show to print the generated secret")
		}
		return handoffToClipboard(out, "Generated secret", string(secret), opts.ttl, conf)
	}
	return nil
}

// resolveSecret obtains the entry secret from whichever source the flags
// selected. The second return reports whether it was freshly generated.
func resolveSecret(cmd *cobra.Command, site string, opts *addOptions) ([]byte, bool, error) {
	if opts.generate > 0 {
		secret, err := internalcrypto.GenerateSecret(opts.generate, internalcrypto.CharsetAlnumSpecial)
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate secret: %w", err)
		}
		return []byte(secret), true, nil
	}

	if opts.secretFile != "" {
		var data []byte
		var err error
		if opts.secretFile == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(opts.secretFile)
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to read secret file: %w", err)
		}
		return bytes.TrimSpace(data), false, nil
	}

	secret, err := readPassphrase(fmt.Sprintf("Secret for %s: ", site))
	if err != nil {
		return nil, false, err
	}
	return secret, false, nil
}
