package shared

import (
	"strings"

	"github.com/charmbracelet/x/cellbuf"
)

// OverlayCenteredSized paints an overlayW x overlayH box over the middle of
// a width x height base frame. The box is clipped to the frame.
func OverlayCenteredSized(base, overlay string, width, height, overlayW, overlayH int) string {
	if width <= 0 || height <= 0 {
		return base
	}
	base = PadLines(base, width, height)
	buf := cellbuf.NewBuffer(width, height)
	cellbuf.SetContent(buf, base)

	if overlayW > width {
		overlayW = width
	}
	if overlayH > height {
		overlayH = height
	}
	if overlayW <= 0 || overlayH <= 0 {
		return renderBufferLines(buf)
	}

	x := (width - overlayW) / 2
	y := (height - overlayH) / 2
	rect := cellbuf.Rect(x, y, overlayW, overlayH)

	blank := strings.Repeat(strings.Repeat(" ", overlayW)+"\n", overlayH-1) + strings.Repeat(" ", overlayW)
	cellbuf.SetContentRect(buf, blank, rect)
	cellbuf.SetContentRect(buf, overlay, rect)

	return renderBufferLines(buf)
}

func renderBufferLines(buf *cellbuf.Buffer) string {
	height := buf.Bounds().Dy()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		_, line := cellbuf.RenderLine(buf, y)
		lines[y] = line
	}
	return strings.Join(lines, "\n")
}
