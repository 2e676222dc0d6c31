// Package util provides error handling and exit code helpers shared by the
// keep commands.
package util

import (
	"errors"
	"fmt"
	"os"

	"github.com/keep-cli/keep/internal/vault"
)

// Exit codes
const (
	ExitOK           = 0
	ExitError        = 1
	ExitInvalidInput = 2
	ExitAuthFailed   = 3
	ExitNotFound     = 4
)

// ExitCodeFor maps an error to the process exit code. Wrapped errors are
// unwrapped via errors.Is, so commands can add context freely.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, vault.ErrWrongPassphraseOrCorrupt):
		return ExitAuthFailed
	case errors.Is(err, vault.ErrVaultNotFound), errors.Is(err, vault.ErrEntryNotFound):
		return ExitNotFound
	case errors.Is(err, vault.ErrVaultExists), errors.Is(err, vault.ErrEntryExists):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

// ExitWithCode exits the program with the specified code and message
func ExitWithCode(code int, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	os.Exit(code)
}

// HandleError prints the error to stderr and exits with its mapped code.
// Error text reaching this point never contains secrets; the vault layer
// guarantees that.
func HandleError(err error) {
	if err == nil {
		return
	}
	ExitWithCode(ExitCodeFor(err), "Error: %v", err)
}

// WrapError wraps an error with additional context
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
