// Package optionbar renders the bottom row of function-key actions.
package optionbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/noelruault/awstop/internal/config"
	"github.com/noelruault/awstop/internal/ui/shared"
)

// MaxOptions is the number of function keys.
const MaxOptions = 12

var (
	// ErrTooManyOptions is a configuration error.
	ErrTooManyOptions = fmt.Errorf("%w: more than %d options", config.ErrConfig, MaxOptions)
	// ErrInsufficientWidth means the labels cannot fit the terminal.
	ErrInsufficientWidth = fmt.Errorf("%w: terminal too narrow for the option bar", config.ErrConfig)
)

// Option is one labelled action. Its key is F<position>.
type Option struct {
	Label  string
	Action func() tea.Cmd
}

// Bar maps F1..Fn to options.
type Bar struct {
	options []Option
}

func New(options []Option) (*Bar, error) {
	b := &Bar{}
	if err := b.SetOptions(options); err != nil {
		return nil, err
	}
	return b, nil
}

// SetOptions replaces every option. On error the bar is left unchanged.
func (b *Bar) SetOptions(options []Option) error {
	if len(options) > MaxOptions {
		return ErrTooManyOptions
	}
	b.options = append([]Option(nil), options...)
	return nil
}

// Labels returns the labels in key order.
func (b *Bar) Labels() []string {
	labels := make([]string, len(b.options))
	for i, o := range b.options {
		labels[i] = o.Label
	}
	return labels
}

// HandleKey runs the action bound to a function key. handled is false for
// keys that are not F1..Fn for the current option count.
func (b *Bar) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	n, ok := functionKey(msg.String())
	if !ok || n > len(b.options) {
		return false, nil
	}
	if action := b.options[n-1].Action; action != nil {
		cmd = action()
	}
	return true, cmd
}

func functionKey(s string) (int, bool) {
	if !strings.HasPrefix(s, "f") {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(s, "f%d", &n); err != nil || fmt.Sprintf("f%d", n) != s {
		return 0, false
	}
	if n < 1 || n > MaxOptions {
		return 0, false
	}
	return n, true
}

// Render lays the options out across width. Each needs room for its key,
// its label and a separator; the rest is shared evenly.
func (b *Bar) Render(width int) (string, error) {
	if len(b.options) == 0 {
		return strings.Repeat(" ", max(width, 0)), nil
	}

	hotkeys := make([]string, len(b.options))
	needed := 0
	for i, o := range b.options {
		hotkeys[i] = fmt.Sprintf("F%d", i+1)
		needed += len(hotkeys[i]) + runewidth.StringWidth(o.Label) + 1
	}
	if needed > width {
		return "", fmt.Errorf("%w: need %d columns, have %d", ErrInsufficientWidth, needed, width)
	}

	spare := width - needed
	share := spare / len(b.options)
	extra := spare % len(b.options)

	var sb strings.Builder
	for i, o := range b.options {
		slot := runewidth.StringWidth(o.Label) + share
		if i < extra {
			slot++
		}
		sb.WriteString(shared.HotkeyStyle.Render(hotkeys[i]))
		sb.WriteString(shared.OptionStyle.Render(shared.Center(o.Label, slot)))
		sb.WriteString(" ")
	}
	return sb.String(), nil
}
