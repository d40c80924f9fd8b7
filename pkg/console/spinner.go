package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/actionsmith/inputguard/pkg/tty"
)

// updateMessageMsg replaces the spinner's message.
type updateMessageMsg string

// spinnerModel is the Bubble Tea model behind Spinner. The program runs with
// WithoutRenderer, so View returns nothing and frames are written to output
// directly from Update via render.
type spinnerModel struct {
	spinner spinner.Model
	message string
	output  io.Writer
}

func newSpinnerModel(message string, output io.Writer) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return spinnerModel{spinner: sp, message: message, output: output}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMessageMsg:
		m.message = string(msg)
		m.render()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.render()
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	return ""
}

func (m spinnerModel) render() {
	if m.output == nil {
		return
	}
	fmt.Fprintf(m.output, "%s%s%s %s", ansiCarriageReturn, ansiClearLine, m.spinner.View(), m.message)
}

// Spinner shows an animated activity indicator on stderr. It is disabled
// when stderr is not a terminal or when accessible mode is requested, and
// every method is safe to call on a disabled spinner.
type Spinner struct {
	mu      sync.Mutex
	enabled bool
	running bool
	message string
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		enabled: tty.IsStderrTerminal() && !IsAccessibleMode(),
		message: message,
	}
}

// IsEnabled reports whether the spinner will animate when started.
func (s *Spinner) IsEnabled() bool {
	return s.enabled
}

// Start begins the animation. Starting an already-running or disabled
// spinner is a no-op.
func (s *Spinner) Start() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	model := newSpinnerModel(s.message, os.Stderr)
	s.program = tea.NewProgram(model, tea.WithoutRenderer(), tea.WithInput(nil))
	s.done = make(chan struct{})
	s.running = true

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(s.program, s.done)
}

// UpdateMessage changes the message shown next to the spinner.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	program, running := s.program, s.running
	s.mu.Unlock()

	if !s.enabled || !running || program == nil {
		return
	}
	program.Send(updateMessageMsg(message))
}

// Stop ends the animation and clears the spinner line. Stopping a spinner
// that was never started is a no-op.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	program, done := s.program, s.done
	s.running = false
	s.mu.Unlock()

	program.Quit()
	select {
	case <-done:
	case <-time.After(time.Second):
		program.Kill()
	}
	ClearLine()
}

// StopWithMessage stops the spinner and prints a final message in its place.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	fmt.Fprintln(os.Stderr, message)
}
