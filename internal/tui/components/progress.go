package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/tui/theme"
)

// XPBar renders the level experience bar with its percentage.
func XPBar(xp float64, width int) string {
	t := theme.Active

	pct := xp / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	return bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// GoalBar renders a labeled wishlist funding bar, e.g.
// "Headphones  ████░░░░  7/20 ★".
func GoalBar(label string, transferred, needed, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if needed > 0 {
		pct = float64(transferred) / float64(needed)
	}
	if pct > 1 {
		pct = 1
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 1:
		barColor = t.Green
	case pct >= 0.5:
		barColor = t.Yellow
	default:
		barColor = t.Accent
	}

	filled := int(pct * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	starStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " " +
		filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled)) + " " +
		starStyle.Render(fmt.Sprintf("%d/%d ★", transferred, needed))
}

// BudgetGauge colors a spent-vs-budget ratio: calm while under budget,
// alarming as the line approaches.
func BudgetGauge(spent, budget, width int) string {
	t := theme.Active

	pct := 0.0
	if budget > 0 {
		pct = float64(spent) / float64(budget)
	}
	if pct > 1 {
		pct = 1
	}

	var barColor lipgloss.Color
	switch {
	case pct >= 1:
		barColor = t.Red
	case pct >= 0.75:
		barColor = t.Orange
	default:
		barColor = t.Green
	}

	bar := progress.New(
		progress.WithSolidFill(string(barColor)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)
	return bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}
