package util

import (
	"os"

	"golang.org/x/term"
)

const defaultTerminalWidth = 80

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the column width of the attached terminal, or 80
// when stdout is not a terminal or the size cannot be determined.
func TerminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return defaultTerminalWidth
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}

	return width
}
