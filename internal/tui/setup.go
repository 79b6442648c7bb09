package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/starledger/internal/config"
	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/tui/theme"
)

// setupValues backs the first-run huh form.
type setupValues struct {
	mode     string
	amount   string // monthly allowance or daily budget, depending on mode
	currency string
	theme    string
}

func newSetupForm(state *model.State, vals *setupValues) *huh.Form {
	vals.mode = string(model.ModeDaily)
	vals.amount = strconv.Itoa(state.Budget)
	vals.currency = "€"
	vals.theme = theme.Active.Name

	validAmount := func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("enter a positive whole number")
		}
		return nil
	}

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget mode for this month").
				Description("Locked until next month.").
				Options(
					huh.NewOption("Daily budget", string(model.ModeDaily)),
					huh.NewOption("Monthly allowance", string(model.ModeMonthly)),
				).
				Value(&vals.mode),

			huh.NewInput().
				Title("Amount").
				Description("Daily budget, or the full month's allowance.").
				Validate(validAmount).
				Value(&vals.amount),

			huh.NewInput().
				Title("Currency symbol").
				Value(&vals.currency),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&vals.theme),
		),
	)
}

// applySetup commits the form values: config to disk, mode election to the
// ledger document.
func (a *App) applySetup() {
	vals := a.setupVals

	amount, err := strconv.Atoi(vals.amount)
	if err != nil || amount <= 0 {
		amount = a.state.Budget
	}

	if vals.currency != "" {
		a.cfg.General.Currency = vals.currency
	}
	a.cfg.Appearance.Theme = vals.theme
	theme.SetActive(vals.theme)
	if vals.mode == string(model.ModeDaily) {
		a.cfg.General.DefaultBudget = amount
	}
	if err := config.Save(a.cfg); err != nil {
		a.errMsg = fmt.Sprintf("could not save config: %v", err)
	}

	if a.state.ModeElected(time.Now()) {
		return
	}

	mode := model.BudgetMode(vals.mode)
	var electErr error
	if mode == model.ModeDaily {
		_ = a.ledger.SetDailyBudget(amount)
		electErr = a.ledger.ElectMode(mode, 0)
	} else {
		electErr = a.ledger.ElectMode(mode, amount)
	}
	if electErr != nil {
		a.errMsg = electErr.Error()
		return
	}
	a.save()
	a.message = "Ready! Press [s] to log today's spending."
}
