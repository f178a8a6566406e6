package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Bar is one labelled value of a BarChart. Values are percentages.
type Bar struct {
	Label string
	Value float64
}

// BarChart renders horizontal bars on a 0-100 scale with aligned labels.
type BarChart struct {
	Bars  []Bar
	Width int
}

// NewBarChart creates a chart from bars in display order.
func NewBarChart(bars []Bar, width int) BarChart {
	return BarChart{Bars: bars, Width: width}
}

// BarsFrom builds bars for keys in the given order.
func BarsFrom(keys []string, values map[string]float64) []Bar {
	bars := make([]Bar, 0, len(keys))
	for _, k := range keys {
		bars = append(bars, Bar{Label: k, Value: values[k]})
	}
	return bars
}

// View renders one bar per line.
func (c BarChart) View() string {
	labelWidth := 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}

	lines := make([]string, 0, len(c.Bars))
	for _, b := range c.Bars {
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		lines = append(lines, NewProgressBar(label, b.Value/100, true, c.Width).View())
	}
	return strings.Join(lines, "\n")
}
