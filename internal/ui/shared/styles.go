package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every pane, in 256-color terms.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	WarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	StatusStyle   = lipgloss.NewStyle().Bold(true)
	HotkeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	OptionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("4"))
	PopupStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("4"))
	SelectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

// GetStateStyle colors an EC2 instance state.
func GetStateStyle(state string) lipgloss.Style {
	switch strings.ToLower(state) {
	case "running":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "stopped", "stopping":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "terminated", "shutting-down":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}
