package console

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/actionsmith/inputguard/pkg/tty"
)

// PromptInput shows an interactive single-line text prompt. The validate
// function may be nil. Returns an error when stdin is not interactive.
func PromptInput(title, description, placeholder string, validate func(string) error) (string, error) {
	if !tty.IsStderrTerminal() {
		return "", errors.New("interactive input not available (not a TTY)")
	}
	if validate == nil {
		validate = func(string) error { return nil }
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Validate(validate).
				Value(&value),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptSelect shows an interactive single-choice prompt and returns the
// value of the chosen option.
func PromptSelect(title string, options []SelectOption) (string, error) {
	if !tty.IsStderrTerminal() {
		return "", errors.New("interactive input not available (not a TTY)")
	}
	if len(options) == 0 {
		return "", errors.New("no options to select from")
	}

	choices := make([]huh.Option[string], len(options))
	for i, opt := range options {
		choices[i] = huh.NewOption(opt.Label, opt.Value)
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(choices...).
				Value(&value),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptConfirm shows an interactive yes/no prompt.
func PromptConfirm(title, description string) (bool, error) {
	if !tty.IsStderrTerminal() {
		return false, errors.New("interactive input not available (not a TTY)")
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirmed),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
