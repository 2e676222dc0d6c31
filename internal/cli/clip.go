package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keep-cli/keep/internal/clipboard"
	"github.com/keep-cli/keep/internal/config"
)

// Clipboard access goes through these vars so tests can stub it out.
var (
	copyToClipboard      = clipboard.CopyWithTimeout
	clipboardCopy        = clipboard.Copy
	clipboardIsAvailable = clipboard.IsAvailable
)

// resolveClipboardTTL picks the clipboard clear delay: an explicit --ttl
// beats the config value, which beats the 30 second default. Zero means
// the clipboard is left alone after copying.
func resolveClipboardTTL(override int, conf *config.Config) (time.Duration, error) {
	if override < -1 {
		return 0, fmt.Errorf("--ttl must be -1 (config default) or a non-negative number of seconds")
	}
	if override >= 0 {
		return time.Duration(override) * time.Second, nil
	}
	if conf != nil {
		return time.Duration(conf.ClipboardTTL) * time.Second, nil
	}
	return 30 * time.Second, nil
}

// handoffToClipboard copies secret to the clipboard and, for a non-zero
// ttl, blocks until the clear fires. The status line prints before the
// blocking wait; Ctrl-C clears early instead of leaving the secret behind.
func handoffToClipboard(out io.Writer, label, secret string, ttlOverride int, conf *config.Config) error {
	ttl, err := resolveClipboardTTL(ttlOverride, conf)
	if err != nil {
		return err
	}

	if ttl == 0 {
		if err := clipboardCopy(secret); err != nil {
			return err
		}
		successf(out, "%s copied to clipboard", label)
		return nil
	}

	successf(out, "%s copied to clipboard (clears in %s, Ctrl-C clears now)", label, ttl.Round(time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := copyToClipboard(ctx, secret, ttl); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
