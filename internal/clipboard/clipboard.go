// Package clipboard wraps system clipboard access for secret handoff.
//
// Timed clears block the caller instead of spawning a goroutine: the CLI is
// a one-shot process, and a background timer would die with it before ever
// firing.
package clipboard

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// CopyWithTimeout copies text to the clipboard, waits for the timeout (or
// context cancellation, whichever comes first), then clears the clipboard
// if it still holds the copied text. Another application overwriting the
// clipboard in the meantime is left alone.
func CopyWithTimeout(ctx context.Context, text string, timeout time.Duration) error {
	if err := Copy(text); err != nil {
		return err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	current, err := clipboard.ReadAll()
	if err == nil && current == text {
		return Clear()
	}
	return nil
}

// IsAvailable returns true if clipboard functionality is available
func IsAvailable() bool {
	// Try to read from clipboard to test availability
	_, err := clipboard.ReadAll()
	return err == nil
}

// Clear clears the clipboard
func Clear() error {
	return clipboard.WriteAll("")
}
