package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/store"
	"github.com/theirongolddev/starledger/internal/tui/components"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

func (a App) viewMonthly() string {
	t := theme.Active
	cw := a.contentWidth()
	cur := a.cfg.General.Currency

	a.ledger.RecomputeMonthly()
	m := a.state.Monthly

	var b strings.Builder

	cards := []struct{ Label, Value, Caption string }{
		{"Budget", fmt.Sprintf("%s%d", cur, m.TotalBudget), m.Month},
		{"Spent", fmt.Sprintf("%s%d", cur, m.TotalSpent), ""},
		{"Saved", fmt.Sprintf("%s%d", cur, m.TotalSaved), ""},
		{"Redeemed", fmt.Sprintf("%s%d", cur, m.TotalRedeemed), "wishlist rewards"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if m.TotalBudget > 0 {
		gauge := components.BudgetGauge(m.TotalSpent, m.TotalBudget, components.CardInnerWidth(cw)-6)
		b.WriteString(components.ContentCard("Month spent vs budget", gauge, cw))
		b.WriteString("\n")
	}

	// Redemption log from the archive, newest first.
	if archive, err := store.OpenArchive(store.ArchivePath(a.dir)); err == nil {
		log, lerr := archive.Redemptions()
		_ = archive.Close()
		if lerr == nil && len(log) > 0 {
			rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
			dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

			var lines strings.Builder
			if len(log) > 8 {
				log = log[:8]
			}
			for _, r := range log {
				lines.WriteString(rowStyle.Render(r.Name))
				lines.WriteString(dimStyle.Render(fmt.Sprintf("  %s%d, %d ★, %s",
					cur, r.Cost, r.Stars, r.RedeemedAt.Format("Jan 2"))))
				lines.WriteString("\n")
			}
			b.WriteString(components.ContentCard("Redemption log", strings.TrimRight(lines.String(), "\n"), cw))
		}
	}

	return b.String()
}
