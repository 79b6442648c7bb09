package ledger

import (
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

func TestProcessDay_UnderBudget(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)

	res, err := l.ProcessDay(30) // budget 50
	if err != nil {
		t.Fatalf("ProcessDay(30): %v", err)
	}

	if res.Points != 40 {
		t.Errorf("Points = %d, want 40", res.Points)
	}
	if res.Saved != 20 {
		t.Errorf("Saved = %d, want 20", res.Saved)
	}
	if res.Overspent {
		t.Error("Overspent = true, want false")
	}
	if s.Score != 40 {
		t.Errorf("Score = %d, want 40", s.Score)
	}
	if s.Streak != 1 {
		t.Errorf("Streak = %d, want 1", s.Streak)
	}
	if s.Lives != 3 {
		t.Errorf("Lives = %d, want 3 (no life lost)", s.Lives)
	}
	if s.LevelXP != 20 {
		t.Errorf("LevelXP = %.1f, want 20", s.LevelXP)
	}
	if s.AvailableStars != 4 {
		t.Errorf("AvailableStars = %d, want 4", s.AvailableStars)
	}
	if s.Day != 2 {
		t.Errorf("Day = %d, want 2", s.Day)
	}
	if s.Budget != 150 {
		t.Errorf("Budget = %d, want 150 (daily escalation)", s.Budget)
	}
	if len(s.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(s.History))
	}
	e := s.History[0]
	if e.Spent != 30 || e.Budget != 50 || e.Points != 40 || e.Saved != 20 {
		t.Errorf("history entry = %+v, want spent=30 budget=50 points=40 saved=20", e)
	}
}

func TestProcessDay_Overspend(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.Streak = 5
	s.LevelXP = 30

	res, err := l.ProcessDay(70) // budget 50
	if err != nil {
		t.Fatalf("ProcessDay(70): %v", err)
	}

	if !res.Overspent {
		t.Error("Overspent = false, want true")
	}
	if res.Points != 0 || res.Saved != 0 {
		t.Errorf("Points/Saved = %d/%d, want 0/0", res.Points, res.Saved)
	}
	if s.Lives != 2 {
		t.Errorf("Lives = %d, want 2", s.Lives)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, want 0 (reset)", s.Streak)
	}
	if s.LevelXP != 20 {
		t.Errorf("LevelXP = %.1f, want 20 (30-10)", s.LevelXP)
	}
	if s.AvailableStars != 0 {
		t.Errorf("AvailableStars = %d, want 0", s.AvailableStars)
	}
}

func TestProcessDay_Bonus(t *testing.T) {
	l, s, _ := newTestLedger(t, withBonus)

	res, err := l.ProcessDay(30)
	if err != nil {
		t.Fatalf("ProcessDay(30): %v", err)
	}

	if res.Bonus != 50 {
		t.Errorf("Bonus = %d, want 50", res.Bonus)
	}
	if s.Score != 90 { // 40 points + 50 bonus
		t.Errorf("Score = %d, want 90", s.Score)
	}
	if s.AvailableStars != 9 { // 4 from points + 5 from bonus
		t.Errorf("AvailableStars = %d, want 9", s.AvailableStars)
	}
	if s.LevelXP != 30 { // 20 + 10 bonus XP
		t.Errorf("LevelXP = %.1f, want 30", s.LevelXP)
	}
}

func TestProcessDay_TwiceSameDay(t *testing.T) {
	l, _, _ := newTestLedger(t, noBonus)

	if _, err := l.ProcessDay(30); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ProcessDay(10); err != ErrDayAlreadyLogged {
		t.Fatalf("second ProcessDay same day = %v, want ErrDayAlreadyLogged", err)
	}
}

func TestProcessDay_NegativeAmount(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)

	if _, err := l.ProcessDay(-1); err != ErrInvalidAmount {
		t.Fatalf("ProcessDay(-1) = %v, want ErrInvalidAmount", err)
	}
	if len(s.History) != 0 {
		t.Fatal("rejected input must not mutate state")
	}
}

func TestProcessDay_ModeNotElected(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.BudgetModeMonth = "2026-07" // stale: forces re-election

	if _, err := l.ProcessDay(30); err != ErrModeNotElected {
		t.Fatalf("ProcessDay with stale mode = %v, want ErrModeNotElected", err)
	}
}

func TestProcessDay_MonthlyAllowance(t *testing.T) {
	l, s, clock := newTestLedger(t, noBonus)
	s.BudgetMode = model.ModeMonthly
	s.MonthBudget = 3100

	// Aug 15 of 31 days: 17 days left, floor(3100/17) = 182.
	if got := l.TodayBudget(); got != 182 {
		t.Fatalf("TodayBudget = %d, want 182", got)
	}

	res, err := l.ProcessDay(100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Budget != 182 {
		t.Errorf("resolved budget = %d, want 182", res.Budget)
	}
	if res.Points != 164 { // (182-100)*2
		t.Errorf("Points = %d, want 164", res.Points)
	}

	// Next day: remaining 3000 over 16 days = 187.
	clock.advance(24 * time.Hour)
	if got := l.TodayBudget(); got != 187 {
		t.Fatalf("next day TodayBudget = %d, want 187", got)
	}
}

func TestProcessDay_MonthlyBudgetNotEscalated(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.BudgetMode = model.ModeMonthly
	s.MonthBudget = 1700
	s.Budget = 50

	if _, err := l.ProcessDay(10); err != nil {
		t.Fatal(err)
	}
	if s.Budget != 50 {
		t.Errorf("daily Budget = %d, want 50 (escalation is daily mode only)", s.Budget)
	}
}

func TestProcessDay_TodayBudgetStableAfterLogging(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.BudgetMode = model.ModeMonthly
	s.MonthBudget = 3100

	if _, err := l.ProcessDay(100); err != nil {
		t.Fatal(err)
	}
	// Same day after logging: the recorded allowance wins over the formula.
	if got := l.TodayBudget(); got != 182 {
		t.Fatalf("TodayBudget after logging = %d, want recorded 182", got)
	}
}

func TestProcessDay_GameOver(t *testing.T) {
	l, s, clock := newTestLedger(t, noBonus)
	s.Lives = 1

	res, err := l.ProcessDay(999)
	if err != nil {
		t.Fatal(err)
	}
	if !res.GameOver {
		t.Error("GameOver = false, want true at zero lives")
	}

	clock.advance(24 * time.Hour)
	if _, err := l.ProcessDay(10); err != ErrGameOver {
		t.Fatalf("ProcessDay after game over = %v, want ErrGameOver", err)
	}
}

func TestProcessDay_XPCaps(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.LevelXP = 95
	s.Budget = 500

	if _, err := l.ProcessDay(0); err != nil {
		t.Fatal(err)
	}
	if s.LevelXP != 100 {
		t.Errorf("LevelXP = %.1f, want capped at 100", s.LevelXP)
	}
}

func TestDayResultSummary(t *testing.T) {
	cases := []struct {
		name string
		res  DayResult
		want string
	}{
		{
			name: "under with stars",
			res:  DayResult{Budget: 50, Spent: 30, Points: 40, StarsEarned: 4},
			want: "Under budget! +40 points (+4 stars).",
		},
		{
			name: "overspent",
			res:  DayResult{Budget: 50, Spent: 70, Overspent: true},
			want: "Overspent by 20! You lost a life.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.res.Summary(); got != tc.want {
				t.Errorf("Summary() = %q, want %q", got, tc.want)
			}
		})
	}
}
