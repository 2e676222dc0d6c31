package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	internalcrypto "github.com/keep-cli/keep/internal/crypto"
)

type passgenOptions struct {
	length    int
	words     int
	separator string
	charset   string
	copyIt    bool
	ttl       int
}

var passgenCmd = newPassgenCommand(nil)

func newPassgenCommand(conf *config.Config) *cobra.Command {
	opts := &passgenOptions{
		length:    20,
		separator: " ",
		charset:   string(internalcrypto.CharsetAlnumSpecial),
		ttl:       -1,
	}

	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Generate secure secrets or passphrases",
		Long: `Generate a random secret from a configurable character set, or a
diceware-style passphrase with --words. Nothing touches the vault; the
generator is usable on its own.

Example:
  keep passgen
  keep passgen --length 32 --charset alnum
  keep passgen --words 5
  keep passgen --copy --ttl 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPassgen(cmd, opts, conf)
		},
	}

	cmd.Flags().IntVar(&opts.length, "length", opts.length, "Length of generated secret (characters)")
	cmd.Flags().IntVar(&opts.words, "words", 0, "Number of words for a diceware passphrase")
	cmd.Flags().StringVar(&opts.separator, "separator", opts.separator, "Separator between passphrase words")
	cmd.Flags().StringVar(&opts.charset, "charset", opts.charset, "Character set (alpha|alnum|alnumspecial)")
	cmd.Flags().BoolVar(&opts.copyIt, "copy", false, "Copy the generated value to the clipboard")
	cmd.Flags().IntVar(&opts.ttl, "ttl", opts.ttl, "Clipboard clear timeout in seconds (-1 uses the config default)")

	return cmd
}

// NewPassgenCommand creates a passgen command for testing.
func NewPassgenCommand(conf *config.Config) *cobra.Command {
	return newPassgenCommand(conf)
}

func runPassgen(cmd *cobra.Command, opts *passgenOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}

	if opts.words > 0 {
		if cmd.Flags().Changed("length") {
			return fmt.Errorf("--words cannot be used with --length")
		}
		if cmd.Flags().Changed("charset") {
			return fmt.Errorf("--words cannot be used with --charset")
		}

		passphrase, err := internalcrypto.GeneratePassphrase(opts.words, opts.separator)
		if err != nil {
			return fmt.Errorf("failed to generate passphrase: %w", err)
		}

		if verbose {
			if bits, err := internalcrypto.DicewareEntropyBits(opts.words); err == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "entropy: ~%.0f bits\n", bits)
			}
		}
		return outputPassgen(cmd, passphrase, opts, conf)
	}

	charset := internalcrypto.Charset(strings.ToLower(opts.charset))
	switch charset {
	case internalcrypto.CharsetAlpha, internalcrypto.CharsetAlnum, internalcrypto.CharsetAlnumSpecial:
	default:
		return fmt.Errorf("invalid charset: %s (valid: alpha, alnum, alnumspecial)", opts.charset)
	}

	if opts.length <= 0 {
		return fmt.Errorf("--length must be positive")
	}

	secret, err := internalcrypto.GenerateSecret(opts.length, charset)
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if verbose {
		if bits, err := internalcrypto.EntropyBits(opts.length, charset); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "entropy: ~%.0f bits\n", bits)
		}
	}
	return outputPassgen(cmd, secret, opts, conf)
}

func outputPassgen(cmd *cobra.Command, secret string, opts *passgenOptions, conf *config.Config) error {
	out := cmd.OutOrStdout()

	if !opts.copyIt {
		return writeOutput(out, "%s\n", secret)
	}

	if !clipboardIsAvailable() {
		return fmt.Errorf("clipboard not available, remove --copy to print instead")
	}
	return handoffToClipboard(out, "Generated secret", secret, opts.ttl, conf)
}
