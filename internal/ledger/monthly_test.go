package ledger

import (
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

func TestRecomputeMonthly_DailySumsRecordedBudgets(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.History = []model.HistoryEntry{
		{Date: midMonth.AddDate(0, 0, -1), Spent: 30, Budget: 50, Mode: model.ModeDaily},
		{Date: midMonth, Spent: 80, Budget: 150, Mode: model.ModeDaily},
		// Previous month, must be ignored.
		{Date: midMonth.AddDate(0, -1, 0), Spent: 999, Budget: 999, Mode: model.ModeDaily},
	}

	l.RecomputeMonthly()

	m := s.Monthly
	if m.TotalBudget != 200 {
		t.Errorf("TotalBudget = %d, want 200 (sum of recorded budgets)", m.TotalBudget)
	}
	if m.TotalSpent != 110 {
		t.Errorf("TotalSpent = %d, want 110", m.TotalSpent)
	}
	if m.TotalSaved != 90 {
		t.Errorf("TotalSaved = %d, want 90", m.TotalSaved)
	}
	if m.Month != "2026-08" {
		t.Errorf("Month = %q, want 2026-08", m.Month)
	}
}

func TestRecomputeMonthly_MonthlyModeUsesAllowance(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.BudgetMode = model.ModeMonthly
	s.MonthBudget = 2000
	s.History = []model.HistoryEntry{
		{Date: midMonth, Spent: 300, Budget: 66, Mode: model.ModeMonthly},
	}

	l.RecomputeMonthly()

	if s.Monthly.TotalBudget != 2000 {
		t.Errorf("TotalBudget = %d, want the 2000 allowance", s.Monthly.TotalBudget)
	}
	if s.Monthly.TotalSaved != 1700 {
		t.Errorf("TotalSaved = %d, want 1700", s.Monthly.TotalSaved)
	}
}

func TestRecomputeMonthly_Idempotent(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.History = []model.HistoryEntry{
		{Date: midMonth, Spent: 30, Budget: 50, Mode: model.ModeDaily},
	}
	s.Monthly.TotalRedeemed = 75

	l.RecomputeMonthly()
	first := s.Monthly
	l.RecomputeMonthly()
	second := s.Monthly

	if first != second {
		t.Fatalf("recompute not idempotent: %+v then %+v", first, second)
	}
	if second.TotalRedeemed != 75 {
		t.Errorf("TotalRedeemed = %d, want preserved 75", second.TotalRedeemed)
	}
}

func TestRecomputeMonthly_SavedFloorsAtZero(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.History = []model.HistoryEntry{
		{Date: midMonth, Spent: 500, Budget: 50, Overspent: true, Mode: model.ModeDaily},
	}

	l.RecomputeMonthly()

	if s.Monthly.TotalSaved != 0 {
		t.Errorf("TotalSaved = %d, want 0", s.Monthly.TotalSaved)
	}
}

func TestCheckRollover(t *testing.T) {
	l, s, clock := newTestLedger(t, noBonus)
	s.Lives = 1
	s.Monthly = model.MonthlySummary{
		TotalBudget: 100, TotalSpent: 40, TotalSaved: 60, TotalRedeemed: 25,
		Month: "2026-08",
	}

	if l.CheckRollover() {
		t.Fatal("rollover fired within the same month")
	}

	clock.t = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if !l.CheckRollover() {
		t.Fatal("rollover did not fire on month change")
	}

	if s.Lives != model.MaxLives {
		t.Errorf("Lives = %d, want refilled %d", s.Lives, model.MaxLives)
	}
	if s.Monthly.Month != "2026-09" || s.Monthly.TotalRedeemed != 0 {
		t.Errorf("Monthly = %+v, want zeroed for 2026-09", s.Monthly)
	}
	if s.BudgetModeMonth != "" {
		t.Errorf("BudgetModeMonth = %q, want cleared", s.BudgetModeMonth)
	}
	if s.LastLifeReset != "2026-09" {
		t.Errorf("LastLifeReset = %q, want 2026-09", s.LastLifeReset)
	}

	if l.CheckRollover() {
		t.Error("second rollover check in the same month must be a no-op")
	}
}

func TestRollover_ForcesModeReelection(t *testing.T) {
	l, _, clock := newTestLedger(t, noBonus)

	if _, err := l.ProcessDay(30); err != nil {
		t.Fatal(err)
	}

	clock.t = clock.t.AddDate(0, 1, 0)
	if _, err := l.ProcessDay(30); err != ErrModeNotElected {
		t.Fatalf("spend after rollover = %v, want ErrModeNotElected", err)
	}

	if err := l.ElectMode(model.ModeDaily, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ProcessDay(30); err != nil {
		t.Fatalf("spend after re-election: %v", err)
	}
}
