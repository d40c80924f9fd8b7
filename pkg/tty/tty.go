// Package tty answers whether the process streams are attached to a
// terminal. Callers decide what to do with that (colors, spinners).
package tty

import (
	"os"

	"golang.org/x/term"
)

// IsStdoutTerminal reports whether stdout is a terminal.
func IsStdoutTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTerminal reports whether stderr is a terminal.
func IsStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// StdoutWidth returns the stdout terminal width, or the fallback when
// stdout is not a terminal or the size cannot be determined.
func StdoutWidth(fallback int) int {
	if !IsStdoutTerminal() {
		return fallback
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
