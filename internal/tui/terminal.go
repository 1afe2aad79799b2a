package tui

import (
	"os"

	"golang.org/x/term"
)

// Default layout when the terminal size is unknown.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 2
)

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// TerminalWidth returns the width of f, or defaultWidth when it is not a
// terminal.
func TerminalWidth(f *os.File) int {
	if !IsTTY(f) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
