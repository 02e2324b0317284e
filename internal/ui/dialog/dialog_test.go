package dialog

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var regions = []string{"us-east-1", "eu-west-1", "ap-southeast-2"}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(KindRegion, "Region", nil, "")
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestInitialHighlight(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cursor())

	s, err = New(KindRegion, "Region", regions, "mars-north-1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cursor())
}

func TestNavigationClamps(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "us-east-1")
	require.NoError(t, err)

	assert.Empty(t, s.HandleKey(keyMsg("up")))
	assert.Equal(t, 0, s.Cursor())

	for range 5 {
		s.HandleKey(keyMsg("j"))
	}
	assert.Equal(t, 2, s.Cursor())

	s.HandleKey(keyMsg("k"))
	assert.Equal(t, "eu-west-1", s.Highlighted())
}

func TestConfirmEmitsSelectedThenClose(t *testing.T) {
	s, err := New(KindService, "Service", []string{"EC2", "S3"}, "EC2")
	require.NoError(t, err)

	s.HandleKey(keyMsg("down"))
	events := s.HandleKey(keyMsg("enter"))
	require.Len(t, events, 2)
	assert.Equal(t, SelectedEvent{Kind: KindService, Value: "S3"}, events[0])
	assert.Equal(t, CloseEvent{Kind: KindService}, events[1])
}

func TestCancelEmitsCloseOnly(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "")
	require.NoError(t, err)

	events := s.HandleKey(keyMsg("esc"))
	assert.Equal(t, []Event{CloseEvent{Kind: KindRegion}}, events)
}

func TestOtherKeysAreSwallowed(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "eu-west-1")
	require.NoError(t, err)

	for _, k := range []string{"q", "x", "f1"} {
		assert.Empty(t, s.HandleKey(keyMsg(k)), k)
	}
	assert.Equal(t, 1, s.Cursor())
}

func TestSelectorSize(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "")
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, 6+len("ap-southeast-2"), w)
	assert.Equal(t, 3+len(regions), h)

	view := s.View()
	assert.Equal(t, w, lipgloss.Width(view))
	assert.Equal(t, h, lipgloss.Height(view))

	long, err := New(KindService, "A rather long title", []string{"S3"}, "")
	require.NoError(t, err)
	w, _ = long.Size()
	assert.Equal(t, 6+len("A rather long title"), w)
}

func TestSelectorViewListsItems(t *testing.T) {
	s, err := New(KindRegion, "Region", regions, "eu-west-1")
	require.NoError(t, err)

	view := ansi.Strip(s.View())
	assert.Contains(t, view, "Region")
	for _, r := range regions {
		assert.Contains(t, view, r)
	}
}

type testKeys struct{ bindings []key.Binding }

func (k testKeys) ShortHelp() []key.Binding  { return k.bindings }
func (k testKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.bindings} }

func TestHelpOverlay(t *testing.T) {
	h := NewHelp("Keys", testKeys{bindings: []key.Binding{
		key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "region")),
		key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "service")),
	}})

	view := ansi.Strip(h.View())
	assert.Contains(t, view, "Keys")
	assert.Contains(t, view, "region")
	assert.Contains(t, view, "F3")

	w, hgt := h.Size()
	assert.Equal(t, lipgloss.Width(h.View()), w)
	assert.Equal(t, strings.Count(h.View(), "\n")+1, hgt)

	assert.Empty(t, h.HandleKey(keyMsg("x")))
	for _, k := range []string{"esc", "enter", "f1", "q"} {
		assert.Equal(t, []Event{CloseEvent{Kind: KindHelp}}, h.HandleKey(keyMsg(k)), k)
	}
}
