package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/tui/components"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

// historyChartDays caps the chart so columns stay readable.
const historyChartDays = 21

func (a App) viewHistory() string {
	t := theme.Active
	cw := a.contentWidth()

	if len(a.state.History) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("  No days logged yet. Press [o] then [s] to log today.")
	}

	var b strings.Builder

	// Chart over the most recent days, oldest on the left.
	start := len(a.state.History) - historyChartDays
	if start < 0 {
		start = 0
	}
	bars := make([]components.SpendBar, 0, historyChartDays)
	for _, e := range a.state.History[start:] {
		bars = append(bars, components.SpendBar{
			Label:     e.Date.Format("2"),
			Spent:     e.Spent,
			Budget:    e.Budget,
			Overspent: e.Overspent,
		})
	}
	b.WriteString(components.ContentCard("Daily spending", components.SpendChart(bars, 8), cw))
	b.WriteString("\n")

	// Recent days, newest first.
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green)
	badStyle := lipgloss.NewStyle().Foreground(t.Red)

	var list strings.Builder
	list.WriteString(headStyle.Render(fmt.Sprintf("%-12s %8s %8s %8s  %s",
		"Day", "Budget", "Spent", "Saved", "Result")))
	list.WriteString("\n")

	shown := 0
	for i := len(a.state.History) - 1; i >= 0 && shown < 10; i-- {
		e := a.state.History[i]
		result := goodStyle.Render(fmt.Sprintf("+%d pts", e.Points))
		if e.Overspent {
			result = badStyle.Render("overspent")
		}
		list.WriteString(rowStyle.Render(fmt.Sprintf("%-12s %8d %8d %8d  ",
			e.Date.Format("Mon Jan 2"), e.Budget, e.Spent, e.Saved)))
		list.WriteString(result)
		list.WriteString("\n")
		shown++
	}
	b.WriteString(components.ContentCard("Recent days", strings.TrimRight(list.String(), "\n"), cw))

	return b.String()
}
