package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/keep-cli/keep/internal/vault"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Nil error", err: nil, want: ExitOK},
		{name: "Wrong passphrase or corrupt", err: vault.ErrWrongPassphraseOrCorrupt, want: ExitAuthFailed},
		{name: "Vault not found", err: vault.ErrVaultNotFound, want: ExitNotFound},
		{name: "Entry not found", err: vault.ErrEntryNotFound, want: ExitNotFound},
		{name: "Vault exists", err: vault.ErrVaultExists, want: ExitInvalidInput},
		{name: "Entry exists", err: vault.ErrEntryExists, want: ExitInvalidInput},
		{name: "Generic error", err: errors.New("boom"), want: ExitError},
		{
			name: "Wrapped sentinel still maps",
			err:  fmt.Errorf("failed to open vault: %w", vault.ErrWrongPassphraseOrCorrupt),
			want: ExitAuthFailed,
		},
		{
			name: "Double wrapped sentinel",
			err:  WrapError(WrapError(vault.ErrEntryNotFound, "get"), "command"),
			want: ExitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should be nil")
	}

	base := errors.New("base failure")
	wrapped := WrapError(base, "doing something")

	if !errors.Is(wrapped, base) {
		t.Error("Wrapped error should unwrap to base")
	}
	if wrapped.Error() != "doing something: base failure" {
		t.Errorf("Unexpected wrapped message: %q", wrapped.Error())
	}
}
