package ec2

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/awstop/internal/ui/panel"
	"github.com/noelruault/awstop/internal/ui/shared"
)

const (
	missingName = "N/A"
	sparkWidth  = 20
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

func columns(withCPU bool) []panel.Column[Row] {
	cols := []panel.Column[Row]{
		{Header: "ID", Value: func(r Row) string { return r.ID }},
		{Header: "Name", Value: displayName},
		{
			Header: "State",
			Value:  func(r Row) string { return r.State },
			Style:  func(r Row) lipgloss.Style { return shared.GetStateStyle(r.State) },
		},
		{Header: "Type", Value: func(r Row) string { return r.InstanceType }},
		{Header: "AZ", Value: func(r Row) string { return r.AZ }},
	}
	if withCPU {
		cols = append(cols, panel.Column[Row]{
			Header: "CPU",
			Value:  func(r Row) string { return sparkline(r.CPU, sparkWidth) },
		})
	}
	return cols
}

func displayName(r Row) string {
	if r.Name == "" {
		return missingName
	}
	return r.Name
}

// sparkline draws the last width percentage samples, one glyph each.
func sparkline(samples []float64, width int) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}
	top := len(sparkLevels) - 1
	var b strings.Builder
	for _, v := range samples {
		level := int(v / 100 * float64(top))
		if level < 0 {
			level = 0
		}
		if level > top {
			level = top
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
