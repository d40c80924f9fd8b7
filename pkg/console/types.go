package console

// TableConfig describes a table for RenderTable.
type TableConfig struct {
	Headers   []string   // Column headers
	Rows      [][]string // Data rows
	Title     string     // Optional title rendered above the table
	ShowTotal bool       // Whether to render a totals row
	TotalRow  []string   // Totals row values, used when ShowTotal is true
}

// ListItem is an entry in an interactive selection list.
type ListItem struct {
	title       string
	description string
	value       string
}

// NewListItem creates a list item with a display title, a one-line
// description, and the value returned when the item is chosen.
func NewListItem(title, description, value string) ListItem {
	return ListItem{title: title, description: description, value: value}
}

// Title implements list.Item.
func (i ListItem) Title() string { return i.title }

// Description implements list.Item.
func (i ListItem) Description() string { return i.description }

// FilterValue implements list.Item.
func (i ListItem) FilterValue() string { return i.title }

// Value returns the value associated with the item.
func (i ListItem) Value() string { return i.value }

// SelectOption is a labeled choice for PromptSelect.
type SelectOption struct {
	Label string
	Value string
}
