package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

type statusOptions struct {
	asJSON bool
}

var statusCmd = newStatusCommand(nil)

func newStatusCommand(conf *config.Config) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show vault metadata",
		Long: `Display metadata about the vault file without opening it: location,
size, format version, cipher, and key derivation parameters. No
passphrase is required and no key is ever derived.

Example:
  keep status
  keep status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts, conf)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Output status as JSON")

	return cmd
}

// NewStatusCommand creates a status command for testing.
func NewStatusCommand(conf *config.Config) *cobra.Command {
	return newStatusCommand(conf)
}

func runStatus(cmd *cobra.Command, opts *statusOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()
	path := resolveVaultPath(conf)

	info, err := vault.Inspect(path)
	if err != nil {
		return err
	}

	if opts.asJSON {
		payload, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		return writeOutput(out, "%s\n", payload)
	}

	if err := writeOutput(out, "Vault: %s\n", info.Path); err != nil {
		return err
	}
	if err := writeOutput(out, "Size: %d bytes (modified %s)\n", info.Size, info.ModTime.Format(time.RFC3339)); err != nil {
		return err
	}
	if err := writeOutput(out, "Format: version %d\n", info.Version); err != nil {
		return err
	}
	if err := writeOutput(out, "Cipher: %s\n", info.Cipher); err != nil {
		return err
	}
	if err := writeOutput(out, "KDF: PBKDF2-SHA256 (%d iterations, %d-byte salt)\n", info.Iterations, info.SaltLength); err != nil {
		return err
	}
	return writeOutput(out, "Ciphertext: %d bytes\n", info.CiphertextLength)
}
