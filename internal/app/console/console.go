// Package console holds the interactive glue of the CLI: confirmation
// prompts, the hidden password read, and report formatting. Nothing in here
// touches a database.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// N formats a count with thousands separators for the report output.
func N(n int) string {
	return printer.Sprintf("%d", n)
}

// Banner prints a section header framed with = lines.
func Banner(lines ...string) {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println(rule)
}

// Confirm asks a yes/no question and returns true only on an explicit
// "yes", matching the historical scripts.
func Confirm(in io.Reader, question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// PromptPassword reads a password without echo when stdin is a terminal,
// and falls back to a plain line read when it is not (tests, pipes).
func PromptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
