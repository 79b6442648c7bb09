package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/tui/theme"
)

// SpendBar is one column in the spending chart.
type SpendBar struct {
	Label     string // short day label, e.g. "15"
	Spent     int
	Budget    int
	Overspent bool
}

// SpendChart renders a vertical bar chart of daily spending. Bars for days
// that stayed under budget draw in green, overspent days in red.
func SpendChart(bars []SpendBar, height int) string {
	t := theme.Active

	if len(bars) == 0 || height < 2 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("  no days logged yet")
	}

	max := 0
	for _, b := range bars {
		if b.Spent > max {
			max = b.Spent
		}
		if b.Budget > max {
			max = b.Budget
		}
	}
	if max == 0 {
		max = 1
	}

	goodStyle := lipgloss.NewStyle().Foreground(t.Green)
	badStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	// Column heights in character cells.
	levels := make([]int, len(bars))
	for i, b := range bars {
		levels[i] = b.Spent * height / max
		if b.Spent > 0 && levels[i] == 0 {
			levels[i] = 1
		}
	}

	var out strings.Builder
	for row := height; row >= 1; row-- {
		out.WriteString("  ")
		for i, b := range bars {
			switch {
			case levels[i] >= row && b.Overspent:
				out.WriteString(badStyle.Render("█ "))
			case levels[i] >= row:
				out.WriteString(goodStyle.Render("█ "))
			default:
				out.WriteString(dimStyle.Render("· "))
			}
		}
		if row == height {
			out.WriteString(axisStyle.Render(fmt.Sprintf(" %d", max)))
		}
		if row == 1 {
			out.WriteString(axisStyle.Render(" 0"))
		}
		out.WriteString("\n")
	}

	// Label every other column to keep the axis readable.
	out.WriteString("  ")
	for i, b := range bars {
		label := b.Label
		if len(label) > 2 {
			label = label[:2]
		}
		if i%2 == 0 && label != "" {
			out.WriteString(axisStyle.Render(fmt.Sprintf("%-2s", label)))
		} else {
			out.WriteString("  ")
		}
	}

	return out.String()
}
