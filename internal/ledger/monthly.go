package ledger

import "github.com/theirongolddev/starledger/internal/model"

// RecomputeMonthly rebuilds the month-to-date aggregates from history. It is
// idempotent: budget, spent and saved are pure functions of the entries in
// the current calendar month, while the redeemed accumulator is carried over
// untouched (redemptions have no history record to recompute from).
func (l *Ledger) RecomputeMonthly() {
	s := l.state
	month := model.MonthKey(l.now())

	totalSpent := 0
	totalBudget := 0
	for _, e := range s.History {
		if model.MonthKey(e.Date) != month {
			continue
		}
		totalSpent += e.Spent
		// Daily budgets move day to day, so the recorded per-entry budget is
		// what counts, not budget × entries.
		totalBudget += e.Budget
	}
	if s.BudgetMode == model.ModeMonthly {
		totalBudget = s.MonthBudget
	}

	totalSaved := totalBudget - totalSpent
	if totalSaved < 0 {
		totalSaved = 0
	}

	s.Monthly = model.MonthlySummary{
		TotalBudget:   totalBudget,
		TotalSpent:    totalSpent,
		TotalSaved:    totalSaved,
		TotalRedeemed: s.Monthly.TotalRedeemed,
		Month:         month,
	}
}

// CheckRollover fires the month-boundary event when the calendar month has
// moved past the last reset: lives refill, the monthly aggregates start over
// for the new month, and the budget-mode lock is cleared so the player must
// re-elect daily vs monthly before logging spending. Reports whether a
// rollover happened.
func (l *Ledger) CheckRollover() bool {
	s := l.state
	month := model.MonthKey(l.now())
	if s.LastLifeReset == month {
		return false
	}

	s.Lives = model.MaxLives
	s.Monthly = model.MonthlySummary{Month: month}
	s.BudgetModeMonth = ""
	s.LastLifeReset = month
	return true
}
