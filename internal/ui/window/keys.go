package window

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/noelruault/awstop/internal/ui/optionbar"
)

// KeyMap holds the bindings active when no overlay is open. Function keys
// belong to the option bar.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "bottom"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit from anywhere"),
		),
	}
}

// helpKeys is what the help overlay lists: the option bar in one column,
// navigation in the other.
type helpKeys struct {
	bar []key.Binding
	nav []key.Binding
}

func newHelpKeys(bar *optionbar.Bar, keys KeyMap) helpKeys {
	h := helpKeys{
		nav: []key.Binding{keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.Home, keys.End, keys.Quit, keys.ForceQuit},
	}
	for i, label := range bar.Labels() {
		n := i + 1
		h.bar = append(h.bar, key.NewBinding(
			key.WithKeys(fmt.Sprintf("f%d", n)),
			key.WithHelp(fmt.Sprintf("F%d", n), label),
		))
	}
	return h
}

func (h helpKeys) ShortHelp() []key.Binding { return h.bar }

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.bar, h.nav}
}
