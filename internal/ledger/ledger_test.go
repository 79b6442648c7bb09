package ledger

import (
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

// stubRand fixes the bonus roll and pricing jitter.
type stubRand struct {
	roll   float64 // bonus fires when roll < 0.2
	jitter int     // returned from Intn; 10 means zero jitter after the -10 shift
}

func (r stubRand) Float64() float64 { return r.roll }
func (r stubRand) Intn(int) int     { return r.jitter }

var (
	noBonus   = stubRand{roll: 0.9, jitter: 10}
	withBonus = stubRand{roll: 0.1, jitter: 10}
)

// midMonth is a fixed reference day: 2026-08-15, a 31-day month.
var midMonth = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

// testClock is a settable clock for multi-day scenarios.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestLedger builds a daily-mode game at midMonth with the mode elected.
func newTestLedger(t *testing.T, rng Rand) (*Ledger, *model.State, *testClock) {
	t.Helper()
	clock := &testClock{t: midMonth}
	state := model.DefaultState(midMonth)
	state.BudgetModeMonth = model.MonthKey(midMonth)
	l := New(&state, WithClock(clock.now), WithRand(rng))
	return l, &state, clock
}

func TestSetDailyBudget_RejectsNegative(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	if err := l.SetDailyBudget(-5); err != ErrInvalidAmount {
		t.Fatalf("SetDailyBudget(-5) = %v, want ErrInvalidAmount", err)
	}
	if s.Budget != 50 {
		t.Fatalf("Budget = %d, want unchanged 50", s.Budget)
	}
}

func TestElectMode_LockedWithinMonth(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)

	if err := l.ElectMode(model.ModeMonthly, 2000); err != ErrModeLocked {
		t.Fatalf("re-election within month = %v, want ErrModeLocked", err)
	}
	if s.BudgetMode != model.ModeDaily {
		t.Fatalf("BudgetMode = %q, want daily (unchanged)", s.BudgetMode)
	}
}

func TestElectMode_AfterRollover(t *testing.T) {
	l, s, clock := newTestLedger(t, noBonus)
	clock.t = midMonth.AddDate(0, 1, 0) // September

	if err := l.ElectMode(model.ModeMonthly, 2000); err != nil {
		t.Fatalf("ElectMode after rollover: %v", err)
	}
	if s.BudgetMode != model.ModeMonthly || s.MonthBudget != 2000 {
		t.Fatalf("mode = %q budget = %d, want monthly/2000", s.BudgetMode, s.MonthBudget)
	}
	if !s.ModeElected(clock.t) {
		t.Fatal("mode should be elected for the new month")
	}
}

func TestElectMode_MonthlyNeedsAllowance(t *testing.T) {
	l, _, clock := newTestLedger(t, noBonus)
	clock.t = midMonth.AddDate(0, 1, 0)

	if err := l.ElectMode(model.ModeMonthly, 0); err != ErrInvalidAmount {
		t.Fatalf("ElectMode(monthly, 0) = %v, want ErrInvalidAmount", err)
	}
}

func TestRestart_KeepsBudgetConfig(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	if _, err := l.ProcessDay(70); err != nil { // overspend, budget 50
		t.Fatal(err)
	}
	s.Lives = 0

	l.Restart()

	if s.Lives != model.MaxLives || s.Score != 0 || s.Day != 1 {
		t.Fatalf("after restart lives=%d score=%d day=%d, want 3/0/1", s.Lives, s.Score, s.Day)
	}
	if len(s.History) != 0 || len(s.Wishlist) != 0 || s.AvailableStars != 0 {
		t.Fatal("restart should clear history, wishlist and stars")
	}
	if s.Budget != 50 || s.BudgetMode != model.ModeDaily {
		t.Fatalf("restart should keep budget config, got budget=%d mode=%q", s.Budget, s.BudgetMode)
	}
}

func TestAchievements_StreakBadges(t *testing.T) {
	l, _, clock := newTestLedger(t, noBonus)

	for i := 0; i < 3; i++ {
		if _, err := l.ProcessDay(10); err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		clock.advance(24 * time.Hour)
	}

	if l.State().Streak != 3 {
		t.Fatalf("Streak = %d, want 3", l.State().Streak)
	}
	ach := l.Achievements()
	if !ach[0].Unlocked {
		t.Errorf("3-day streak badge should be unlocked")
	}
	if ach[1].Unlocked {
		t.Errorf("7-day streak badge should still be locked")
	}
}

// starsEarned sums the earn rule over all history entries; redeemedStars sums
// stars consumed by redeemed items. Used by conservation checks.
func starsEarned(s *model.State) int {
	total := 0
	for _, e := range s.History {
		total += e.Points/10 + e.Bonus/10
	}
	return total
}

func heldInWishlist(s *model.State) int {
	total := 0
	for _, w := range s.Wishlist {
		if !w.Redeemed {
			total += w.StarsTransferred
		}
	}
	return total
}

func redeemedStars(s *model.State) int {
	total := 0
	for _, w := range s.Wishlist {
		if w.Redeemed {
			total += w.StarsTransferred
		}
	}
	return total
}

// checkConservation asserts the global star invariant:
// available + held = earned - redeemed, and available never negative.
func checkConservation(t *testing.T, s *model.State) {
	t.Helper()
	if s.AvailableStars < 0 {
		t.Fatalf("AvailableStars = %d, must never be negative", s.AvailableStars)
	}
	got := s.AvailableStars + heldInWishlist(s)
	want := starsEarned(s) - redeemedStars(s)
	if got != want {
		t.Fatalf("star conservation broken: available+held = %d, earned-redeemed = %d", got, want)
	}
}

func TestStarConservation_AcrossOperations(t *testing.T) {
	l, s, clock := newTestLedger(t, noBonus)

	if _, err := l.ProcessDay(0); err != nil { // 100 points, 10 stars
		t.Fatal(err)
	}
	checkConservation(t, s)

	item, err := l.AddItem("Headphones", 40)
	if err != nil {
		t.Fatal(err)
	}
	clock.advance(time.Minute)
	if _, err := l.TransferStars(item.ID, 6); err != nil {
		t.Fatal(err)
	}
	checkConservation(t, s)

	if _, err := l.AdjustToday(30); err != nil { // 40 points, 4 stars
		t.Fatal(err)
	}
	checkConservation(t, s)

	if _, err := l.Cancel(item.ID); err != nil {
		t.Fatal(err)
	}
	checkConservation(t, s)
}
