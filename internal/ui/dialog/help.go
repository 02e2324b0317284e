package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/awstop/internal/ui/shared"
)

// Help lists the dashboard key bindings.
type Help struct {
	title string
	keys  help.KeyMap
	model help.Model
	close key.Binding
}

var _ Overlay = (*Help)(nil)

func NewHelp(title string, keys help.KeyMap) *Help {
	return &Help{
		title: title,
		keys:  keys,
		model: help.New(),
		close: key.NewBinding(key.WithKeys("esc", "enter", "f1", "q")),
	}
}

func (h *Help) HandleKey(msg tea.KeyMsg) []Event {
	if key.Matches(msg, h.close) {
		return []Event{CloseEvent{Kind: KindHelp}}
	}
	return nil
}

func (h *Help) View() string {
	body := h.model.FullHelpView(h.keys.FullHelp())
	width := max(lipgloss.Width(body), lipgloss.Width(h.title)) + 2

	lines := []string{shared.HeaderStyle.Render(shared.Center(h.title, width)), ""}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, " "+shared.FitLine(line, width-1))
	}
	return box(strings.Join(lines, "\n"))
}

func (h *Help) Size() (int, int) {
	v := h.View()
	return lipgloss.Width(v), lipgloss.Height(v)
}
