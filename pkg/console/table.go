package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/mathutil"
	"github.com/actionsmith/inputguard/pkg/stringutil"
	"github.com/actionsmith/inputguard/pkg/tty"
)

const minColumnWidth = 3

// RenderTable renders a bordered table from the given configuration.
// Columns are sized to their widest cell, then clamped so the table fits
// the terminal. Cells wider than their column are truncated.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	widths := columnWidths(config)

	var sb strings.Builder
	if config.Title != "" {
		sb.WriteString(titleStyle.Render(config.Title))
		sb.WriteString("\n")
	}

	writeRule(&sb, widths, "┌", "┬", "┐")
	writeRow(&sb, config.Headers, widths, &headerStyle)
	writeRule(&sb, widths, "├", "┼", "┤")
	for _, row := range config.Rows {
		writeRow(&sb, row, widths, nil)
	}
	if config.ShowTotal && len(config.TotalRow) > 0 {
		writeRule(&sb, widths, "├", "┼", "┤")
		writeRow(&sb, config.TotalRow, widths, &headerStyle)
	}
	writeRule(&sb, widths, "└", "┴", "┘")

	return sb.String()
}

// columnWidths computes the display width of each column, clamped so the
// whole table fits within the terminal width.
func columnWidths(config TableConfig) []int {
	widths := make([]int, len(config.Headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	measure(config.Headers)
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}

	// Budget: terminal width minus borders and padding (3 chars per column
	// plus the closing border).
	available := tty.StdoutWidth(int(constants.MaxSummaryWidth)) - 3*len(widths) - 1
	if available < minColumnWidth {
		available = minColumnWidth
	}
	maxColumn := mathutil.Clamp(available/len(widths), minColumnWidth, available)
	for i := range widths {
		widths[i] = mathutil.Clamp(widths[i], minColumnWidth, maxColumn)
	}
	return widths
}

func writeRule(sb *strings.Builder, widths []int, left, mid, right string) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	sb.WriteString(borderStyle.Render(left + strings.Join(parts, mid) + right))
	sb.WriteString("\n")
}

func writeRow(sb *strings.Builder, row []string, widths []int, style *lipgloss.Style) {
	sep := borderStyle.Render("│")
	sb.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = stringutil.Truncate(row[i], w)
		}
		padded := " " + cell + strings.Repeat(" ", w-len(cell)+1)
		if style != nil {
			padded = style.Render(padded)
		}
		sb.WriteString(padded)
		sb.WriteString(sep)
	}
	sb.WriteString("\n")
}
