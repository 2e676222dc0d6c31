package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/vault"
)

type listOptions struct {
	long   bool
	asJSON bool
	filter string
}

var listCmd = newListCommand(nil)

func newListCommand(conf *config.Config) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in the vault",
		Long: `List the sites stored in the vault, sorted by name. Secrets are
never part of the listing.

The --filter expression narrows the list with substring tokens matched
against site and username, case-insensitively. Tokens are separated by
'+' or whitespace and all of them must match (e.g. 'aws+prod').

Example:
  keep list
  keep list --long
  keep list --filter github
  keep list --filter aws+prod --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, conf)
		},
	}

	cmd.Flags().BoolVar(&opts.long, "long", false, "Show usernames alongside sites")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by substring tokens over site and username")

	return cmd
}

// NewListCommand creates a list command for testing.
func NewListCommand(conf *config.Config) *cobra.Command {
	return newListCommand(conf)
}

func runList(cmd *cobra.Command, opts *listOptions, conf *config.Config) error {
	if conf == nil {
		conf = cfg
	}
	out := cmd.OutOrStdout()

	_, store, passphrase, err := openVault(conf)
	if err != nil {
		return err
	}
	defer vault.Zeroize(passphrase)
	defer store.Wipe()

	tokens := vault.ParseFilterTokens(opts.filter)

	var entries []vault.Entry
	for _, site := range store.Sites() {
		entry, err := store.Get(site)
		if err != nil {
			return err
		}
		if !vault.MatchesFilterTokens(entry, tokens) {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		if opts.filter != "" {
			return writeOutput(out, "No entries match the filter\n")
		}
		if err := writeOutput(out, "The vault is empty\n"); err != nil {
			return err
		}
		return writeOutput(out, "Use 'keep add <site>' to create your first entry\n")
	}

	if opts.asJSON {
		return outputEntriesJSON(out, entries)
	}
	return outputEntriesTable(out, entries, opts.long)
}

func outputEntriesTable(out io.Writer, entries []vault.Entry, long bool) error {
	if !long {
		for _, entry := range entries {
			if err := writeOutput(out, "%s\n", entry.Site); err != nil {
				return err
			}
		}
		return writeOutput(out, "\n%d entries\n", len(entries))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprint(w, "SITE\tUSERNAME\n----\t--------\n"); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", entry.Site, entry.Username); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	return writeOutput(out, "\n%d entries\n", len(entries))
}

func outputEntriesJSON(out io.Writer, entries []vault.Entry) error {
	// Listing output never includes secrets
	type entryOutput struct {
		Site     string `json:"site"`
		Username string `json:"username,omitempty"`
	}

	output := make([]entryOutput, 0, len(entries))
	for _, entry := range entries {
		output = append(output, entryOutput{
			Site:     entry.Site,
			Username: entry.Username,
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
