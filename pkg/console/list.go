package console

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/actionsmith/inputguard/pkg/tty"
)

// listModel drives the interactive selection list.
type listModel struct {
	list   list.Model
	choice string
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Let keystrokes reach the filter input while filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(ListItem); ok {
				m.choice = item.Value()
			}
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	return m.list.View()
}

// ShowInteractiveList presents a filterable selection list and returns the
// value of the chosen item. In accessible mode it falls back to a plain
// select prompt. Cancelling the list returns an error.
func ShowInteractiveList(title string, items []ListItem) (string, error) {
	if !tty.IsStderrTerminal() {
		return "", errors.New("interactive selection not available (not a TTY)")
	}

	if IsAccessibleMode() {
		options := make([]SelectOption, len(items))
		for i, item := range items {
			options[i] = SelectOption{Label: item.Title(), Value: item.Value()}
		}
		return PromptSelect(title, options)
	}

	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, list.NewDefaultDelegate(), 0, 0)
	l.Title = title

	program := tea.NewProgram(listModel{list: l}, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return "", err
	}

	model, ok := final.(listModel)
	if !ok || model.choice == "" {
		return "", errors.New("selection cancelled")
	}
	return model.choice, nil
}
