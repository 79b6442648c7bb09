package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/tui/components"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

func (a App) viewOverview() string {
	t := theme.Active
	cw := a.contentWidth()
	now := time.Now()

	var b strings.Builder

	if a.state.GameOver() {
		banner := lipgloss.NewStyle().
			Foreground(t.Red).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Red).
			Padding(0, 2)
		b.WriteString(banner.Render("GAME OVER. Press [r] to start a new game"))
		b.WriteString("\n\n")
	}

	cards := []struct{ Label, Value, Caption string }{
		{"Score", fmt.Sprintf("%d", a.state.Score), "points"},
		{"Streak", fmt.Sprintf("%d", a.state.Streak), "days under budget"},
		{"Stars", fmt.Sprintf("%d ★", a.state.AvailableStars), "free to transfer"},
		{"Day", fmt.Sprintf("%d", a.state.Day), "of the game"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Level progress
	xpBody := components.XPBar(a.state.LevelXP, components.CardInnerWidth(cw)-6)
	b.WriteString(components.ContentCard("Level XP", xpBody, cw))
	b.WriteString("\n")

	// Today
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var today strings.Builder
	if !a.state.ModeElected(now) {
		today.WriteString(labelStyle.Render("No budget mode chosen for this month yet."))
	} else {
		budget := a.ledger.TodayBudget()
		today.WriteString(labelStyle.Render("Mode: "))
		today.WriteString(valueStyle.Render(string(a.state.BudgetMode)))
		today.WriteString(labelStyle.Render("   Budget: "))
		today.WriteString(valueStyle.Render(fmt.Sprintf("%s%d", a.cfg.General.Currency, budget)))
		today.WriteString("\n")

		if entry := a.state.TodayEntry(now); entry != nil {
			today.WriteString(labelStyle.Render("Spent: "))
			today.WriteString(valueStyle.Render(fmt.Sprintf("%s%d", a.cfg.General.Currency, entry.Spent)))
			today.WriteString("  ")
			today.WriteString(components.BudgetGauge(entry.Spent, entry.Budget, 20))
			today.WriteString("\n")
			today.WriteString(hintStyle.Render("[a] adjust today's amount"))
		} else {
			today.WriteString(goodStyle.Render("Not logged yet."))
			today.WriteString("  ")
			today.WriteString(hintStyle.Render("[s] log spending"))
		}
	}
	b.WriteString(components.ContentCard("Today", today.String(), cw))
	b.WriteString("\n")

	// Achievements
	var badges strings.Builder
	for i, ach := range a.ledger.Achievements() {
		if i > 0 {
			badges.WriteString("\n")
		}
		if ach.Unlocked {
			badges.WriteString(goodStyle.Render("🏆 " + ach.Name))
		} else {
			badges.WriteString(hintStyle.Render("🔒 " + ach.Name))
		}
	}
	b.WriteString(components.ContentCard("Achievements", badges.String(), cw))

	return b.String()
}
