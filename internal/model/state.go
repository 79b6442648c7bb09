// Package model defines domain types for the starledger game state.
package model

import "time"

// BudgetMode selects how the day's allowance is resolved.
type BudgetMode string

const (
	ModeDaily   BudgetMode = "daily"
	ModeMonthly BudgetMode = "monthly"
)

// MonthKey formats a time as the YYYY-MM tag used for mode locks and resets.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey formats a time as the YYYY-MM-DD tag that keys history uniqueness.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HistoryEntry records one processed calendar day. Exactly one entry may
// exist per DayKey; the adjust operation replaces it in place.
type HistoryEntry struct {
	Date      time.Time  `json:"date"`
	Spent     int        `json:"spent"`
	Points    int        `json:"points"`
	Bonus     int        `json:"bonus"`
	Overspent bool       `json:"overspent"`
	Saved     int        `json:"saved"`
	Budget    int        `json:"budget"`
	Mode      BudgetMode `json:"mode"`
}

// WishStatus is the explicit lifecycle state of a wishlist item.
type WishStatus string

const (
	WishActive    WishStatus = "active"
	WishCompleted WishStatus = "completed"
	WishRedeemed  WishStatus = "redeemed"
)

// WishlistItem is a named, star-priced savings goal.
//
// Invariants: StarsTransferred <= StarsNeeded;
// Completed == (StarsTransferred == StarsNeeded); Redeemed implies Completed.
type WishlistItem struct {
	ID               int64      `json:"id"` // unix-millis at creation
	Name             string     `json:"name"`
	Cost             int        `json:"cost"`
	StarsNeeded      int        `json:"starsNeeded"`
	StarsTransferred int        `json:"starsTransferred"`
	Completed        bool       `json:"completed"`
	Redeemed         bool       `json:"redeemed"`
	LastTransferTime *time.Time `json:"lastTransferTime,omitempty"`
}

// Status derives the lifecycle state from the stored flags.
func (w WishlistItem) Status() WishStatus {
	switch {
	case w.Redeemed:
		return WishRedeemed
	case w.Completed:
		return WishCompleted
	default:
		return WishActive
	}
}

// Remaining returns how many stars the item still needs.
func (w WishlistItem) Remaining() int {
	r := w.StarsNeeded - w.StarsTransferred
	if r < 0 {
		return 0
	}
	return r
}

// MonthlySummary holds month-to-date aggregates. TotalBudget, TotalSpent and
// TotalSaved are recomputed from history; TotalRedeemed is an accumulator
// that recomputation must preserve verbatim.
type MonthlySummary struct {
	TotalBudget   int    `json:"totalBudget"`
	TotalSpent    int    `json:"totalSpent"`
	TotalSaved    int    `json:"totalSaved"`
	TotalRedeemed int    `json:"totalRedeemed"`
	Month         string `json:"month"`
}

// State is the canonical mutable ledger record, persisted as one JSON
// document. All game rules operate on this struct through the ledger package.
type State struct {
	Budget          int            `json:"budget"`
	MonthBudget     int            `json:"monthBudget"`
	BudgetMode      BudgetMode     `json:"budgetMode"`
	BudgetModeMonth string         `json:"budgetModeMonth"` // YYYY-MM; "" or stale = unelected
	Score           int            `json:"score"`
	Lives           int            `json:"lives"`
	Streak          int            `json:"streak"`
	LevelXP         float64        `json:"levelXP"`
	Day             int            `json:"day"`
	AvailableStars  int            `json:"availableStars"`
	History         []HistoryEntry `json:"history"`
	Wishlist        []WishlistItem `json:"wishlist"`
	Monthly         MonthlySummary `json:"monthlyData"`
	LastLifeReset   string         `json:"lastLifeReset"` // YYYY-MM
}

// MaxLives is the life ceiling; lives refill to this on month rollover.
const MaxLives = 3

// DefaultState returns a fresh game for the month containing now.
func DefaultState(now time.Time) State {
	return State{
		Budget:        50,
		BudgetMode:    ModeDaily,
		Lives:         MaxLives,
		Day:           1,
		Monthly:       MonthlySummary{Month: MonthKey(now)},
		LastLifeReset: MonthKey(now),
	}
}

// TodayEntry returns a pointer to the history entry for the day containing
// now, or nil if that day has not been processed.
func (s *State) TodayEntry(now time.Time) *HistoryEntry {
	key := DayKey(now)
	for i := range s.History {
		if DayKey(s.History[i].Date) == key {
			return &s.History[i]
		}
	}
	return nil
}

// WishItem returns a pointer to the wishlist item with the given id, or nil.
func (s *State) WishItem(id int64) *WishlistItem {
	for i := range s.Wishlist {
		if s.Wishlist[i].ID == id {
			return &s.Wishlist[i]
		}
	}
	return nil
}

// ModeElected reports whether a budget mode has been chosen for the month
// containing now. A stale BudgetModeMonth forces re-election.
func (s *State) ModeElected(now time.Time) bool {
	return s.BudgetModeMonth == MonthKey(now)
}

// GameOver reports whether all lives are spent.
func (s *State) GameOver() bool {
	return s.Lives <= 0
}
