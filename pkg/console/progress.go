package console

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/actionsmith/inputguard/pkg/tty"
)

// ProgressBar tracks a batch of discrete items, like the rule documents
// of one generation run. In a terminal it redraws an animated bar in
// place as items finish; otherwise it stays quiet until Finish prints
// one summary line for CI logs. Safe for concurrent Advance calls.
type ProgressBar struct {
	mu      sync.Mutex
	label   string
	total   int
	current int
	model   *progress.Model
	live    bool
}

// NewProgressBar creates a bar over total items. The label names what
// the items are ("rule documents").
func NewProgressBar(label string, total int) *ProgressBar {
	model := progress.New(progress.WithDefaultGradient())
	return &ProgressBar{
		label: label,
		total: total,
		model: &model,
		live:  tty.IsStderrTerminal() && !IsAccessibleMode(),
	}
}

// Advance marks one more item done and redraws the bar when stderr is
// a terminal.
func (b *ProgressBar) Advance() {
	b.mu.Lock()
	b.current++
	line := b.view()
	live := b.live
	b.mu.Unlock()

	if live {
		fmt.Fprintf(os.Stderr, "%s%s%s", ansiCarriageReturn, ansiClearLine, line)
	}
}

// Finish clears any in-place bar and prints the final count on its own
// line.
func (b *ProgressBar) Finish() {
	b.mu.Lock()
	counts := b.counts()
	live := b.live
	b.mu.Unlock()

	if live {
		ClearLine()
	}
	fmt.Fprintln(os.Stderr, counts)
}

// View returns the current rendering without printing it.
func (b *ProgressBar) View() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view()
}

// view needs b.mu held.
func (b *ProgressBar) view() string {
	counts := b.counts()
	if !b.live {
		return counts
	}
	return b.model.ViewAs(b.fraction()) + " " + counts
}

// counts needs b.mu held.
func (b *ProgressBar) counts() string {
	return fmt.Sprintf("%d/%d %s (%d%%)", b.current, b.total, b.label, b.percent())
}

// percent needs b.mu held. An empty batch is complete by definition.
func (b *ProgressBar) percent() int {
	if b.total <= 0 {
		return 100
	}
	return b.current * 100 / b.total
}

// fraction needs b.mu held.
func (b *ProgressBar) fraction() float64 {
	if b.total <= 0 {
		return 1
	}
	f := float64(b.current) / float64(b.total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
