package ledger

import (
	"fmt"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

// Scoring constants. The +100 daily escalation is deliberate behavior carried
// over from the game design, not a balancing accident.
const (
	pointsPerSavedUnit = 2
	starDivisor        = 10 // 10 points = 1 star
	bonusChance        = 0.2
	bonusPoints        = 50
	bonusXP            = 10
	xpPerDayCap        = 20
	xpCeiling          = 100
	overspendXPLoss    = 10
	dailyBudgetStep    = 100
)

// DayResult reports the outcome of processing or adjusting one day.
type DayResult struct {
	Budget      int
	Spent       int
	Points      int
	Bonus       int
	StarsEarned int
	Saved       int
	Overspent   bool
	GameOver    bool
	RolledOver  bool // a month rollover fired before the operation
}

// Summary renders the one-line outcome message shown after logging a day.
func (r DayResult) Summary() string {
	if r.Overspent {
		return fmt.Sprintf("Overspent by %d! You lost a life.", r.Spent-r.Budget)
	}
	msg := fmt.Sprintf("Under budget! +%d points", r.Points)
	if r.StarsEarned > 0 {
		msg += fmt.Sprintf(" (+%d stars)", r.StarsEarned)
	}
	if r.Bonus > 0 {
		msg += fmt.Sprintf(", bonus +%d points", r.Bonus)
	}
	return msg + "."
}

// TodayBudget resolves the effective allowance for the day containing now.
// Daily mode uses the budget field directly. Monthly mode spreads the
// remaining allowance evenly across the days left in the month, except that a
// day already logged keeps the allowance recorded for it.
func (l *Ledger) TodayBudget() int {
	s := l.state
	now := l.now()

	if s.BudgetMode == model.ModeDaily {
		return s.Budget
	}

	if e := s.TodayEntry(now); e != nil {
		return e.Budget
	}

	remaining := s.MonthBudget - l.monthToDateSpent(now)
	if remaining < 0 {
		remaining = 0
	}
	daysLeft := daysInMonth(now) - now.Day() + 1
	if daysLeft < 1 {
		daysLeft = 1
	}
	return remaining / daysLeft
}

// ProcessDay applies one day's spending against the current budget. It is the
// only way a new history entry is created, and it refuses to run twice for
// the same calendar day.
func (l *Ledger) ProcessDay(spent int) (DayResult, error) {
	s := l.state
	rolled := l.CheckRollover()
	now := l.now()

	if spent < 0 {
		return DayResult{}, ErrInvalidAmount
	}
	if s.GameOver() {
		return DayResult{}, ErrGameOver
	}
	if !s.ModeElected(now) {
		return DayResult{}, ErrModeNotElected
	}
	if s.TodayEntry(now) != nil {
		return DayResult{}, ErrDayAlreadyLogged
	}

	budget := l.TodayBudget()
	res := DayResult{Budget: budget, Spent: spent, RolledOver: rolled}

	if spent <= budget {
		res.Points = (budget - spent) * pointsPerSavedUnit
		s.Score += res.Points
		s.Streak++
		s.LevelXP = clampXP(s.LevelXP + xpGain(res.Points))

		res.StarsEarned = res.Points / starDivisor
		s.AvailableStars += res.StarsEarned

		if l.rng.Float64() < bonusChance {
			res.Bonus = bonusPoints
			s.Score += res.Bonus
			s.LevelXP = clampXP(s.LevelXP + bonusXP)
			bonusStars := res.Bonus / starDivisor
			res.StarsEarned += bonusStars
			s.AvailableStars += bonusStars
		}
	} else {
		res.Overspent = true
		s.Lives--
		if s.Lives < 0 {
			s.Lives = 0
		}
		s.Streak = 0
		s.LevelXP = clampXP(s.LevelXP - overspendXPLoss)
	}

	res.Saved = budget - spent
	if res.Saved < 0 {
		res.Saved = 0
	}

	s.History = append(s.History, model.HistoryEntry{
		Date:      now,
		Spent:     spent,
		Points:    res.Points,
		Bonus:     res.Bonus,
		Overspent: res.Overspent,
		Saved:     res.Saved,
		Budget:    budget,
		Mode:      s.BudgetMode,
	})

	l.RecomputeMonthly()
	s.Day++

	if s.BudgetMode == model.ModeDaily {
		s.Budget += dailyBudgetStep
	}

	res.GameOver = s.GameOver()
	return res, nil
}

func (l *Ledger) monthToDateSpent(now time.Time) int {
	month := model.MonthKey(now)
	total := 0
	for _, e := range l.state.History {
		if model.MonthKey(e.Date) == month {
			total += e.Spent
		}
	}
	return total
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// xpGain is min(20, points/2); points are whole but halves matter for XP.
func xpGain(points int) float64 {
	g := float64(points) / 2
	if g > xpPerDayCap {
		return xpPerDayCap
	}
	return g
}

func clampXP(xp float64) float64 {
	if xp < 0 {
		return 0
	}
	if xp > xpCeiling {
		return xpCeiling
	}
	return xp
}
