// Package console renders styled terminal output for the inputguard CLI:
// status messages, tables, struct summaries, spinners, progress bars, and
// interactive prompts. Styling degrades gracefully when stderr is not a
// terminal or when ACCESSIBLE mode is requested.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	verboseStyle = lipgloss.NewStyle().Faint(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// IsAccessibleMode reports whether accessible rendering was requested via the
// ACCESSIBLE environment variable. Interactive widgets fall back to plain
// prompts in this mode.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// FormatErrorMessage formats an error status line.
func FormatErrorMessage(message string) string {
	return errorStyle.Render("✗ " + message)
}

// FormatWarningMessage formats a warning status line.
func FormatWarningMessage(message string) string {
	return warningStyle.Render("⚠ " + message)
}

// FormatSuccessMessage formats a success status line.
func FormatSuccessMessage(message string) string {
	return successStyle.Render("✓ " + message)
}

// FormatInfoMessage formats an informational status line.
func FormatInfoMessage(message string) string {
	return infoStyle.Render("ℹ " + message)
}

// FormatProgressMessage formats a step-in-progress status line.
func FormatProgressMessage(message string) string {
	return infoStyle.Render("⋯ " + message)
}

// FormatVerboseMessage formats a low-priority diagnostic line. Shown only
// when the caller has verbose output enabled.
func FormatVerboseMessage(message string) string {
	return verboseStyle.Render(message)
}

// FormatCommandMessage formats a shell command suggested to the user.
func FormatCommandMessage(command string) string {
	return commandStyle.Render(command)
}

// FormatPromptMessage formats a question put to the user.
func FormatPromptMessage(message string) string {
	return promptStyle.Render("? " + message)
}

// FormatHeaderMessage formats a section header.
func FormatHeaderMessage(message string) string {
	return headerStyle.Render(message)
}

// LogVerbose writes a verbose diagnostic to stderr when verbose is enabled.
func LogVerbose(verbose bool, message string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(message))
	}
}
