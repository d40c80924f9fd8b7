package console

import (
	"fmt"
	"os"

	"github.com/actionsmith/inputguard/pkg/tty"
)

// ANSI escape sequences for terminal control
const (
	// ansiClearScreen clears the screen and moves the cursor home
	ansiClearScreen = "\033[H\033[2J"

	// ansiClearLine clears from the cursor to the end of the line
	ansiClearLine = "\033[K"

	// ansiCarriageReturn moves the cursor to the start of the line
	ansiCarriageReturn = "\r"
)

// ClearScreen clears the terminal screen if stderr is a TTY.
func ClearScreen() {
	if tty.IsStderrTerminal() {
		fmt.Fprint(os.Stderr, ansiClearScreen)
	}
}

// ClearLine clears the current line in the terminal if stderr is a TTY.
func ClearLine() {
	if tty.IsStderrTerminal() {
		fmt.Fprintf(os.Stderr, "%s%s", ansiCarriageReturn, ansiClearLine)
	}
}

// ShowWelcomeBanner clears the screen and prints the banner shown at the
// start of interactive commands.
func ShowWelcomeBanner(description string) {
	ClearScreen()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "🛡 InputGuard: action input validation")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, description)
	fmt.Fprintln(os.Stderr, "")
}
