package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// StdinIsPipe reports whether stdin carries piped data rather than a
// terminal.
func StdinIsPipe() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadPiped drains stdin. Use after StdinIsPipe confirms a pipe.
func ReadPiped() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading piped input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadLine prompts on stderr and reads one trimmed line from stdin.
// An empty answer returns def.
func ReadLine(prompt, def string) string {
	if def != "" {
		fmt.Fprintf(os.Stderr, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(os.Stderr, "%s: ", prompt)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// Confirm asks a yes/no question. Empty input returns def.
func Confirm(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer := strings.ToLower(ReadLine(fmt.Sprintf("%s (%s)", prompt, hint), ""))
	switch answer {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Select prints a numbered menu on stderr and returns the chosen
// index. Empty input returns def; out-of-range answers re-prompt.
func Select(prompt string, items []string, def int) int {
	fmt.Fprintln(os.Stderr, prompt)
	for i, item := range items {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, item)
	}
	for {
		answer := ReadLine("Choice", strconv.Itoa(def+1))
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(items) {
			return n - 1
		}
		Warnf("enter a number between 1 and %d", len(items))
	}
}

// ReadPassword prompts on stderr and reads without echo. Falls back
// to a plain line read when stdin is not a terminal.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ReadLine("", ""), nil
	}
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
