// Package ledger implements the budget game rules: day processing, retroactive
// adjustment, the wishlist star ledger, and monthly aggregation. All operations
// mutate a single model.State owned by the caller; randomness and wall-clock
// time are injected so every rule is testable.
package ledger

import (
	"errors"
	"math/rand"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

// Operation rejections surfaced to the user. None of these leave the state
// mutated.
var (
	ErrInvalidAmount    = errors.New("amount must be a non-negative whole number")
	ErrDayAlreadyLogged = errors.New("today's spending is already logged, use adjust to change it")
	ErrNoEntryToday     = errors.New("no spending logged today, nothing to adjust")
	ErrModeNotElected   = errors.New("budget mode not chosen for this month, run budget mode first")
	ErrModeLocked       = errors.New("budget mode is locked for this month")
	ErrGameOver         = errors.New("no lives left, run restart to play again")
	ErrEmptyName        = errors.New("item name must not be empty")
	ErrItemNotFound     = errors.New("no wishlist item with that id")
	ErrItemCompleted    = errors.New("item is already fully funded")
	ErrItemNotCompleted = errors.New("item is not fully funded yet")
	ErrItemRedeemed     = errors.New("item is already redeemed")
	ErrNotEnoughStars   = errors.New("no stars available to transfer")
)

// Rand is the random source consumed by the bonus roll and star pricing.
// *rand.Rand satisfies it; tests substitute a stub to fix outcomes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Ledger applies game rules to a shared state record.
type Ledger struct {
	state *model.State
	now   func() time.Time
	rng   Rand
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRand overrides the random source, for tests.
func WithRand(r Rand) Option {
	return func(l *Ledger) { l.rng = r }
}

// New wraps state in a Ledger. The state is mutated in place by operations.
func New(state *model.State, opts ...Option) *Ledger {
	l := &Ledger{
		state: state,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State exposes the wrapped record for rendering and persistence.
func (l *Ledger) State() *model.State {
	return l.state
}

// SetDailyBudget updates the daily budget amount.
func (l *Ledger) SetDailyBudget(amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	l.state.Budget = amount
	return nil
}

// ElectMode locks the budget mode for the current calendar month. In monthly
// mode, amount is the month's extra-spending allowance. Re-election is only
// possible after a month rollover clears the lock.
func (l *Ledger) ElectMode(mode model.BudgetMode, amount int) error {
	l.CheckRollover()

	if l.state.ModeElected(l.now()) {
		return ErrModeLocked
	}
	switch mode {
	case model.ModeDaily:
		// Daily keeps the existing budget field.
	case model.ModeMonthly:
		if amount <= 0 {
			return ErrInvalidAmount
		}
		l.state.MonthBudget = amount
	default:
		return ErrInvalidAmount
	}
	l.state.BudgetMode = mode
	l.state.BudgetModeMonth = model.MonthKey(l.now())
	l.RecomputeMonthly()
	return nil
}

// Reset wipes all progress back to a fresh game.
func (l *Ledger) Reset() {
	*l.state = model.DefaultState(l.now())
}

// Restart begins a new run after game over: progress and history are cleared
// but the budget configuration survives.
func (l *Ledger) Restart() {
	s := l.state
	s.Lives = model.MaxLives
	s.Score = 0
	s.Streak = 0
	s.LevelXP = 0
	s.Day = 1
	s.AvailableStars = 0
	s.History = nil
	s.Wishlist = nil
	s.Monthly = model.MonthlySummary{Month: model.MonthKey(l.now())}
	s.LastLifeReset = model.MonthKey(l.now())
}

// Achievement is a named badge with its unlock state.
type Achievement struct {
	Name     string
	Unlocked bool
}

// Achievements returns the badge board for the current state.
func (l *Ledger) Achievements() []Achievement {
	s := l.state
	return []Achievement{
		{Name: "Budget master (3-day streak)", Unlocked: s.Streak >= 3},
		{Name: "Consistency (7-day streak)", Unlocked: s.Streak >= 7},
		{Name: "Elite saver (14-day streak)", Unlocked: s.Streak >= 14},
		{Name: "Smart choices (500 points)", Unlocked: s.Score >= 500},
	}
}
