package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a seam for tests.
var readPassword = term.ReadPassword

// PromptPassword asks for a password on the terminal without echoing it.
// Download and delete use it when the pasted share URL carries no fragment.
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := readPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	return password, nil
}
