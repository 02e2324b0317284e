package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks a truncated cell.
const Ellipsis = "..."

// shortEllipsis marks cells too narrow for Ellipsis.
const shortEllipsis = "…"

// Viewport holds scrolling state for list-like views.
type Viewport struct {
	Offset int
	Height int
}

// Scroll moves the viewport by delta rows, clamped to the list.
func (vp *Viewport) Scroll(delta, listLength int) {
	vp.Offset += delta
	clampOffset(vp, listLength)
}

func clampOffset(vp *Viewport, listLength int) {
	maxOffset := listLength - vp.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if vp.Offset > maxOffset {
		vp.Offset = maxOffset
	}
	if vp.Offset < 0 {
		vp.Offset = 0
	}
}

// GetVisibleRange returns start and end indices for the current viewport.
func GetVisibleRange(listLength int, vp Viewport) (int, int) {
	if listLength == 0 || vp.Height <= 0 {
		return 0, 0
	}
	start := vp.Offset
	if start > listLength {
		start = listLength
	}
	end := start + vp.Height
	if end > listLength {
		end = listLength
	}
	return start, end
}

// Truncate shortens a string to the given display width with ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= len(Ellipsis) {
		return runewidth.Truncate(s, max, shortEllipsis)
	}
	return runewidth.Truncate(s, max, Ellipsis)
}

// Cell fits s into a column of width: truncated to width-1 so a gutter
// always separates columns, then padded.
func Cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width-1), width)
}

// Center pads s on both sides to width, truncating when it does not fit.
func Center(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = Truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// FitLine truncates a possibly styled line to width and pads it.
func FitLine(text string, width int) string {
	if width <= 0 {
		return ""
	}
	truncated := ansi.Truncate(text, width, "")
	padding := width - lipgloss.Width(truncated)
	if padding < 0 {
		padding = 0
	}
	return truncated + strings.Repeat(" ", padding)
}

// PadLines forces text into exactly width x height cells.
func PadLines(text string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = FitLine(line, width)
	}
	for len(lines) < height {
		lines = append(lines, FitLine("", width))
	}
	return strings.Join(lines, "\n")
}
