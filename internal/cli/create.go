package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

type createOptions struct {
	iterations int
	force      bool
}

var createCmd = newCreateCommand(nil)

func newCreateCommand(conf *config.Config) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new vault",
		Long: `Create a new encrypted vault file.

You will be prompted to choose a passphrase; it is the only thing that
can ever open the vault again, so pick one you will not lose. The vault
file is created with owner-only permissions (0600).

Example:
  keep create
  keep create --vault /path/to/vault.json
  keep create --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts, conf)
		},
	}

	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "PBKDF2 iteration count (0 uses the config value)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Replace an existing vault")

	return cmd
}

// NewCreateCommand creates a create command for testing.
func NewCreateCommand(conf *config.Config) *cobra.Command {
	return newCreateCommand(conf)
}

func runCreate(cmd *cobra.Command, opts *createOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	path := resolveVaultPath(conf)
	out := cmd.OutOrStdout()

	iterations := opts.iterations
	if iterations == 0 && conf != nil {
		iterations = conf.KDF.Iterations
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Choose a strong passphrase. It encrypts everything and cannot be recovered.")
	passphrase, err := PromptNewPassphrase("Enter passphrase: ")
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)

	_, store, err := vault.Create(path, passphrase, vault.CreateOptions{
		Iterations: iterations,
		Force:      opts.force,
	})
	if err != nil {
		if errors.Is(err, vault.ErrVaultExists) {
			return fmt.Errorf("%w at %s (use --force to replace it)", err, path)
		}
		return err
	}
	defer store.Wipe()

	successf(out, "Vault created at %s", path)
	if verbose {
		fmt.Fprintf(out, "KDF: PBKDF2-SHA256, %d iterations\n", pickIterations(iterations))
	}
	fmt.Fprintln(out, "Use 'keep add <site>' to store your first secret.")
	return nil
}

func pickIterations(requested int) int {
	if requested > 0 {
		return requested
	}
	return vault.DefaultIterations
}
