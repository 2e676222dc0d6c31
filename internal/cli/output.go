package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// successf prints a green check-marked status line
func successf(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// warnf prints a yellow warning line
func warnf(w io.Writer, format string, args ...interface{}) {
	warnColor.Fprintf(w, "warning: "+format+"\n", args...)
}

// writeOutput writes formatted output with error checking
func writeOutput(w io.Writer, format string, args ...interface{}) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
