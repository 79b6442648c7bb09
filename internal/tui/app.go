// Package tui provides the interactive Bubble Tea dashboard for starledger.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/starledger/internal/config"
	"github.com/theirongolddev/starledger/internal/ledger"
	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/store"
	"github.com/theirongolddev/starledger/internal/tui/components"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

// entryKind selects what the shared text input is collecting.
type entryKind int

const (
	entryNone entryKind = iota
	entrySpend
	entryAdjust
	entryWishName
	entryWishCost
	entryTransfer
)

// App is the root Bubble Tea model.
type App struct {
	state  *model.State
	ledger *ledger.Ledger
	cfg    config.Config
	dir    string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	message   string
	errMsg    string

	// Shared input line for spend/adjust/wishlist entry
	input           textinput.Model
	entry           entryKind
	pendingWishName string

	// Wishlist cursor
	wishCursor int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
)

// NewApp creates a new TUI app model. Load errors are surfaced inside the
// dashboard rather than aborting it.
func NewApp(dir string) App {
	cfg, _ := config.Load()
	if dir == "" {
		dir = cfg.General.DataDir
	}
	if dir == "" {
		dir = store.DefaultDir()
	}

	now := time.Now()
	state, err := store.Load(dir, now)

	a := App{
		state:  &state,
		ledger: ledger.New(&state),
		cfg:    cfg,
		dir:    dir,
	}
	if err != nil {
		a.errMsg = err.Error()
	}

	if a.ledger.CheckRollover() {
		a.message = "New month! Lives refilled."
		a.save()
	}

	// First run, or a fresh month without an elected mode, opens the form.
	a.needSetup = !config.Exists() || !state.ModeElected(now)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		// Form construction needs the final App address, so build lazily on
		// the first window size message instead.
		return nil
	}
	return nil
}

func (a *App) save() {
	if err := store.Save(a.dir, a.state); err != nil {
		a.errMsg = err.Error()
		return
	}
	if archive, err := store.OpenArchive(store.ArchivePath(a.dir)); err == nil {
		_ = archive.SyncState(a.state)
		_ = archive.Close()
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.needSetup && a.setupForm == nil {
			a.setupForm = newSetupForm(a.state, &a.setupVals)
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
			return a, a.setupForm.Init()
		}
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup form intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Active text entry intercepts all keys
		if a.entry != entryNone {
			return a.updateEntry(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q", "esc":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case 0:
			return a.updateOverviewKeys(key)
		case 2:
			return a.updateWishlistKeys(key)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if a.entry != entryNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// beginEntry opens the shared input line for the given purpose.
func (a *App) beginEntry(kind entryKind, placeholder string) tea.Cmd {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 40
	ti.Width = 24
	ti.Focus()
	a.input = ti
	a.entry = kind
	a.message = ""
	a.errMsg = ""
	return ti.Cursor.BlinkCmd()
}

func (a App) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.entry = entryNone
		return a, nil
	case "enter":
		return a.commitEntry()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) commitEntry() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(a.input.Value())
	kind := a.entry
	a.entry = entryNone

	switch kind {
	case entrySpend, entryAdjust:
		amount, err := strconv.Atoi(value)
		if err != nil {
			a.errMsg = fmt.Sprintf("not a number: %q", value)
			return a, nil
		}
		var result ledger.DayResult
		if kind == entrySpend {
			result, err = a.ledger.ProcessDay(amount)
		} else {
			result, err = a.ledger.AdjustToday(amount)
		}
		if err != nil {
			a.errMsg = err.Error()
			return a, nil
		}
		a.save()
		a.message = result.Summary()
		return a, nil

	case entryWishName:
		if value == "" {
			a.errMsg = "item needs a name"
			return a, nil
		}
		a.pendingWishName = value
		return a, a.beginEntry(entryWishCost, "cost, e.g. 80")

	case entryWishCost:
		cost, err := strconv.Atoi(value)
		if err != nil {
			a.errMsg = fmt.Sprintf("not a number: %q", value)
			return a, nil
		}
		item, err := a.ledger.AddItem(a.pendingWishName, cost)
		if err != nil {
			a.errMsg = err.Error()
			return a, nil
		}
		a.save()
		a.message = fmt.Sprintf("Added %q, needs %d stars.", item.Name, item.StarsNeeded)
		return a, nil

	case entryTransfer:
		stars, err := strconv.Atoi(value)
		if err != nil {
			a.errMsg = fmt.Sprintf("not a number: %q", value)
			return a, nil
		}
		items := a.ledger.ActiveWishlist()
		if a.wishCursor >= len(items) {
			return a, nil
		}
		moved, err := a.ledger.TransferStars(items[a.wishCursor].ID, stars)
		if err != nil {
			a.errMsg = err.Error()
			return a, nil
		}
		a.save()
		if moved < stars {
			a.message = fmt.Sprintf("Moved %d stars (all you had free).", moved)
		} else {
			a.message = fmt.Sprintf("Moved %d stars.", moved)
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateOverviewKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "s":
		if a.state.TodayEntry(time.Now()) != nil {
			a.errMsg = "today is already logged; press [a] to adjust it"
			return a, nil
		}
		return a, a.beginEntry(entrySpend, "spent today, e.g. 35")
	case "a":
		if a.state.TodayEntry(time.Now()) == nil {
			a.errMsg = "nothing to adjust; press [s] to log today first"
			return a, nil
		}
		return a, a.beginEntry(entryAdjust, "corrected amount")
	case "r":
		if a.state.GameOver() {
			a.ledger.Restart()
			a.save()
			a.message = "New game started."
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateWishlistKeys(key string) (tea.Model, tea.Cmd) {
	items := a.ledger.ActiveWishlist()

	switch key {
	case "j", "down":
		if a.wishCursor < len(items)-1 {
			a.wishCursor++
		}
		return a, nil
	case "k", "up":
		if a.wishCursor > 0 {
			a.wishCursor--
		}
		return a, nil
	case "n":
		return a, a.beginEntry(entryWishName, "item name")
	case "t":
		if a.wishCursor < len(items) {
			return a, a.beginEntry(entryTransfer, "stars to move")
		}
		return a, nil
	case "r":
		if a.wishCursor < len(items) {
			item, err := a.ledger.Redeem(items[a.wishCursor].ID)
			if err != nil {
				a.errMsg = err.Error()
				return a, nil
			}
			a.save()
			if archive, aerr := store.OpenArchive(store.ArchivePath(a.dir)); aerr == nil {
				_ = archive.RecordRedemption(*item, time.Now())
				_ = archive.Close()
			}
			a.message = fmt.Sprintf("Redeemed %q. Enjoy!", item.Name)
		}
		return a, nil
	case "c":
		if a.wishCursor < len(items) {
			refunded, err := a.ledger.Cancel(items[a.wishCursor].ID)
			if err != nil {
				a.errMsg = err.Error()
				return a, nil
			}
			a.save()
			a.message = fmt.Sprintf("Removed item, %d stars refunded.", refunded)
			if a.wishCursor > 0 {
				a.wishCursor--
			}
		}
		return a, nil
	}
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.RenderTabBar(a.activeTab, a.contentWidth()))
	b.WriteString("\n\n")

	switch a.activeTab {
	case 0:
		b.WriteString(a.viewOverview())
	case 1:
		b.WriteString(a.viewHistory())
	case 2:
		b.WriteString(a.viewWishlist())
	case 3:
		b.WriteString(a.viewMonthly())
	}

	b.WriteString("\n")
	b.WriteString(a.viewMessageLine())
	b.WriteString("\n")

	livesStr := strings.Repeat("♥", a.state.Lives) + strings.Repeat("♡", model.MaxLives-a.state.Lives)
	b.WriteString(components.RenderStatusBar(a.contentWidth(), livesStr))
	return b.String()
}

func (a App) viewMessageLine() string {
	t := theme.Active

	if a.entry != entryNone {
		label := map[entryKind]string{
			entrySpend:    "Log today's spending",
			entryAdjust:   "Correct today",
			entryWishName: "New wishlist item",
			entryWishCost: "Item cost",
			entryTransfer: "Transfer stars",
		}[a.entry]
		labelStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
		return fmt.Sprintf("  %s: %s", labelStyle.Render(label), a.input.View())
	}

	if a.errMsg != "" {
		return "  " + lipgloss.NewStyle().Foreground(t.Red).Render(a.errMsg)
	}
	if a.message != "" {
		return "  " + lipgloss.NewStyle().Foreground(t.Green).Render(a.message)
	}
	return ""
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted)
	return style.Render(fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth))
}

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	key := lipgloss.NewStyle().Foreground(t.TextPrimary)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted)

	lines := []struct{ k, d string }{
		{"o/h/w/m", "jump to a tab"},
		{"tab / shift+tab", "cycle tabs"},
		{"s", "log today's spending (Overview)"},
		{"a", "correct today's amount (Overview)"},
		{"r", "restart after game over (Overview)"},
		{"j/k", "move in the wishlist"},
		{"n", "new wishlist item"},
		{"t", "transfer stars to selected item"},
		{"r", "redeem selected item (Wishlist)"},
		{"c", "cancel selected item, refund stars"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(title.Render("  Keys"))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-16s", l.k)), desc.Render(l.d)))
	}
	b.WriteString("\n")
	b.WriteString(desc.Render("  Press any key to close."))
	return b.String()
}
