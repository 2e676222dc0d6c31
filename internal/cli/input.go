package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/keep-cli/keep/internal/vault"
)

// minPassphraseLength is enforced when choosing a new passphrase, never
// when opening an existing vault.
const minPassphraseLength = 8

// readPassphrase reads a passphrase from the terminal without echoing it.
// Prompts go to stderr so stdout stays clean for piped output. Tests swap
// this out.
var readPassphrase = func(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// readLine reads a line of regular input. Tests swap this out.
var readLine = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// PromptPassphrase prompts for an existing vault's passphrase. The caller
// must Zeroize the returned buffer.
func PromptPassphrase(prompt string) ([]byte, error) {
	passphrase, err := readPassphrase(prompt)
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}

// PromptNewPassphrase prompts for a new passphrase with confirmation and a
// minimum length check. The caller must Zeroize the returned buffer.
func PromptNewPassphrase(prompt string) ([]byte, error) {
	passphrase, err := readPassphrase(prompt)
	if err != nil {
		return nil, err
	}
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if len(passphrase) < minPassphraseLength {
		vault.Zeroize(passphrase)
		return nil, fmt.Errorf("passphrase is too short (minimum %d characters)", minPassphraseLength)
	}

	confirm, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		vault.Zeroize(passphrase)
		return nil, err
	}
	defer vault.Zeroize(confirm)

	if !bytes.Equal(passphrase, confirm) {
		vault.Zeroize(passphrase)
		return nil, fmt.Errorf("passphrases do not match")
	}
	return passphrase, nil
}

// PromptInput prompts for regular input
func PromptInput(prompt string) (string, error) {
	return readLine(prompt)
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(prompt string, defaultYes bool) (bool, error) {
	var suffix string
	if defaultYes {
		suffix = " [Y/n]: "
	} else {
		suffix = " [y/N]: "
	}

	input, err := readLine(prompt + suffix)
	if err != nil {
		return false, err
	}

	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return defaultYes, nil
	}
	return input == "y" || input == "yes", nil
}
