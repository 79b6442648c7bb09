package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/tui/components"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

func (a App) viewWishlist() string {
	t := theme.Active
	cw := a.contentWidth()

	items := a.ledger.ActiveWishlist()

	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	starStyle := lipgloss.NewStyle().Foreground(t.Yellow).Bold(true)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(starStyle.Render(fmt.Sprintf("%d ★ available", a.state.AvailableStars)))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(hintStyle.Render("  Wishlist is empty. Press [n] to add a goal."))
		return b.String()
	}

	labelW := 0
	for _, w := range items {
		if len(w.Name) > labelW {
			labelW = len(w.Name)
		}
	}
	if labelW > 24 {
		labelW = 24
	}

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(t.Green)

	var list strings.Builder
	for i, w := range items {
		cursor := "  "
		if i == a.wishCursor {
			cursor = cursorStyle.Render("> ")
		}
		name := w.Name
		if len(name) > labelW {
			name = name[:labelW-1] + "…"
		}
		list.WriteString(cursor)
		list.WriteString(components.GoalBar(name, w.StarsTransferred, w.StarsNeeded, labelW, 16))
		if w.Status() == model.WishCompleted {
			list.WriteString("  ")
			list.WriteString(statusStyle.Render("ready to redeem"))
		}
		list.WriteString("\n")
		list.WriteString(hintStyle.Render(fmt.Sprintf("    %s%d", a.cfg.General.Currency, w.Cost)))
		list.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Goals", strings.TrimRight(list.String(), "\n"), cw))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  [n]ew  [t]ransfer  [r]edeem  [c]ancel  j/k move"))

	return b.String()
}
