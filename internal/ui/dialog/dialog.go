// Package dialog implements the modal overlays drawn over the dashboard:
// the single-choice selectors for region and service, and the key help.
//
// While an overlay is open it receives every key. It reports what happened
// through events instead of touching the dashboard directly.
package dialog

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/noelruault/awstop/internal/ui/shared"
)

// ErrNoCandidates is returned when a selector is built from an empty list.
var ErrNoCandidates = errors.New("dialog: no candidates")

// Kind identifies which overlay produced an event.
type Kind int

const (
	KindRegion Kind = iota
	KindService
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindService:
		return "service"
	default:
		return "help"
	}
}

// Event is emitted by an overlay in response to a key.
type Event interface {
	kind() Kind
}

// SelectedEvent carries the confirmed choice of a selector.
type SelectedEvent struct {
	Kind  Kind
	Value string
}

// CloseEvent asks the owner to dismiss the overlay.
type CloseEvent struct {
	Kind Kind
}

func (e SelectedEvent) kind() Kind { return e.Kind }
func (e CloseEvent) kind() Kind    { return e.Kind }

// Overlay is a modal drawn centered over the dashboard.
type Overlay interface {
	HandleKey(msg tea.KeyMsg) []Event
	View() string
	Size() (width, height int)
}

// KeyMap holds the selector bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Selector is a single-choice list.
type Selector struct {
	kind   Kind
	title  string
	items  []string
	cursor int
	keys   KeyMap
}

var _ Overlay = (*Selector)(nil)

// New builds a selector highlighting current, or the first item when
// current is not listed.
func New(kind Kind, title string, items []string, current string) (*Selector, error) {
	if len(items) == 0 {
		return nil, ErrNoCandidates
	}
	s := &Selector{
		kind:  kind,
		title: title,
		items: append([]string(nil), items...),
		keys:  DefaultKeyMap(),
	}
	for i, item := range s.items {
		if item == current {
			s.cursor = i
			break
		}
	}
	return s, nil
}

func (s *Selector) Kind() Kind { return s.kind }

// Cursor is the index of the highlighted item.
func (s *Selector) Cursor() int { return s.cursor }

// Highlighted returns the highlighted item.
func (s *Selector) Highlighted() string { return s.items[s.cursor] }

// HandleKey moves the highlight or confirms/cancels. Unbound keys are
// swallowed.
func (s *Selector) HandleKey(msg tea.KeyMsg) []Event {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Select):
		return []Event{
			SelectedEvent{Kind: s.kind, Value: s.items[s.cursor]},
			CloseEvent{Kind: s.kind},
		}
	case key.Matches(msg, s.keys.Cancel):
		return []Event{CloseEvent{Kind: s.kind}}
	}
	return nil
}

// Size is the bordered box: a title row plus one row per item, wide enough
// for the longest label or the title with a margin.
func (s *Selector) Size() (int, int) {
	return s.innerWidth() + 2, len(s.items) + 3
}

func (s *Selector) innerWidth() int {
	widest := runewidth.StringWidth(s.title)
	for _, item := range s.items {
		widest = max(widest, runewidth.StringWidth(item))
	}
	return widest + 4
}

func (s *Selector) View() string {
	inner := s.innerWidth()
	lines := make([]string, 0, len(s.items)+1)
	lines = append(lines, shared.HeaderStyle.Inherit(shared.PopupStyle).Render(shared.Center(s.title, inner)))
	for i, item := range s.items {
		row := "  " + runewidth.FillRight(item, inner-4) + "  "
		if i == s.cursor {
			lines = append(lines, shared.SelectedStyle.Render(row))
			continue
		}
		lines = append(lines, shared.PopupStyle.Render(row))
	}
	return box(strings.Join(lines, "\n"))
}

func box(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("255")).
		BorderBackground(lipgloss.Color("4")).
		Render(content)
}
