// Command organize sorts a directory's files into category folders by
// extension. It ships alongside keep but shares nothing with the vault:
// no passphrase, no encryption, plain files in, plain files out.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keep-cli/keep/internal/config"
	"github.com/keep-cli/keep/internal/logging"
	"github.com/keep-cli/keep/internal/organize"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	cfgFile       string
	dryRun        bool
	listOnly      bool
	includeHidden bool
	logFile       string
	quiet         bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Sort a directory's files into category folders",
		Long: `Organize scans a directory tree and moves every file into a category
folder (Documents, Images, Archives, ...) created at the top of the
tree, based on its extension. Name collisions get an incrementing
" (N)" suffix; hidden files and directories are left alone unless
--include-hidden is set.

The extension table can be customized in the organizer section of the
keep config file.

Example:
  organize ~/Downloads
  organize ~/Downloads --dry-run
  organize . --include-hidden`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "."
			if len(args) == 1 {
				source = args[0]
			}
			return run(cmd, source, opts)
		},
	}

	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/keep/config.yaml)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Preview moves without touching anything")
	cmd.Flags().BoolVar(&opts.listOnly, "list-only", false, "Alias for --dry-run")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "Also organize hidden files and directories")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Log file name inside the source directory (overrides config)")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Only print the summary")

	return cmd
}

func run(cmd *cobra.Command, source string, opts *rootOptions) error {
	out := cmd.OutOrStdout()

	cfgFile := opts.cfgFile
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}
	conf, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	dryRun := opts.dryRun || opts.listOnly
	includeHidden := opts.includeHidden || conf.Organizer.IncludeHidden

	logFileName := conf.Organizer.LogFile
	if opts.logFile != "" {
		logFileName = opts.logFile
	}

	// The log file lives inside the tree being organized, so it must be
	// excluded from the run. Dry runs write no log at all.
	var logger *logging.Logger
	var skipPaths []string
	if logFileName != "" {
		logPath := filepath.Join(source, logFileName)
		skipPaths = append(skipPaths, logPath)
		if !dryRun {
			logger, err = logging.NewFileLogger(logging.LevelInfo, logPath)
			if err != nil {
				return err
			}
			defer logger.Close()
		}
	}

	if dryRun {
		color.New(color.FgYellow).Fprintln(out, "Dry run: nothing will be moved")
	}

	result, err := organize.Organize(source, organize.Options{
		DryRun:        dryRun,
		IncludeHidden: includeHidden,
		Categories:    conf.Organizer.Categories,
		SkipPaths:     skipPaths,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		for _, move := range result.Moves {
			rel := relativeTo(source, move.Target)
			fmt.Fprintf(out, "%s -> %s\n", filepath.Base(move.Source), rel)
		}
	}
	for _, fileErr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", fileErr.Path, fileErr.Err)
	}

	s := result.Summary
	fmt.Fprintf(out, "\nScanned %d, moved %d, skipped %d, errors %d\n",
		s.Scanned, s.Moved, s.Skipped, s.Errors)

	if s.Errors > 0 {
		return fmt.Errorf("%d files could not be moved", s.Errors)
	}
	return nil
}

// relativeTo shortens target for display when it sits under the source dir
func relativeTo(source, target string) string {
	abs, err := filepath.Abs(source)
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(abs, target)
	if err != nil {
		return target
	}
	return rel
}
