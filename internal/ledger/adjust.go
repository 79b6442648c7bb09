package ledger

import (
	"sort"
	"time"
)

// AdjustToday replaces the spend amount of today's already-logged entry and
// reconciles every derived effect. The reversal mirrors the forward rule
// exactly: score and XP deltas are subtracted, a non-overspent day gives back
// its streak increment, and the star delta is applied after reclaiming any
// stars that were already moved into the wishlist.
//
// Lives lost by the old entry are not restored; the life counter only refills
// on month rollover or restart.
func (l *Ledger) AdjustToday(newSpent int) (DayResult, error) {
	s := l.state
	rolled := l.CheckRollover()
	now := l.now()

	if newSpent < 0 {
		return DayResult{}, ErrInvalidAmount
	}
	entry := s.TodayEntry(now)
	if entry == nil {
		return DayResult{}, ErrNoEntryToday
	}

	old := *entry

	// Reverse the old entry's effects.
	s.Score -= old.Points + old.Bonus
	if !old.Overspent && s.Streak > 0 {
		s.Streak--
	}
	s.LevelXP -= xpGain(old.Points)
	if old.Bonus > 0 {
		s.LevelXP -= bonusXP
	}
	s.LevelXP = clampXP(s.LevelXP)

	// Reapply against the same recorded day budget. An existing bonus is kept
	// rather than re-rolled, but only if the new amount stays under budget.
	budget := old.Budget
	res := DayResult{Budget: budget, Spent: newSpent, RolledOver: rolled}

	if newSpent <= budget {
		res.Points = (budget - newSpent) * pointsPerSavedUnit
		res.Bonus = old.Bonus
		s.Score += res.Points + res.Bonus
		s.Streak++
		s.LevelXP = clampXP(s.LevelXP + xpGain(res.Points))
		if res.Bonus > 0 {
			s.LevelXP = clampXP(s.LevelXP + bonusXP)
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

	res.Saved = budget - newSpent
	if res.Saved < 0 {
		res.Saved = 0
	}

	// Reconcile stars. Bonus stars are part of the earn rule, so they are in
	// the delta whenever the bonus itself appears or disappears.
	oldStars := old.Points/starDivisor + old.Bonus/starDivisor
	newStars := res.Points/starDivisor + res.Bonus/starDivisor
	res.StarsEarned = newStars

	if s.AvailableStars < oldStars {
		l.reclaimStarsFromWishlist(oldStars - s.AvailableStars)
	}
	s.AvailableStars += newStars - oldStars
	if s.AvailableStars < 0 {
		s.AvailableStars = 0
	}

	// Same identity, same date: replace in place.
	entry.Spent = newSpent
	entry.Points = res.Points
	entry.Bonus = res.Bonus
	entry.Overspent = res.Overspent
	entry.Saved = res.Saved

	l.RecomputeMonthly()

	res.GameOver = s.GameOver()
	return res, nil
}

// reclaimStarsFromWishlist pulls stars back out of wishlist items, most
// recent deposit first, until needed stars are recovered or every candidate
// is exhausted. Redeemed items are never touched. Returns the reclaimed count.
func (l *Ledger) reclaimStarsFromWishlist(needed int) int {
	s := l.state

	var idx []int
	for i := range s.Wishlist {
		w := &s.Wishlist[i]
		if !w.Redeemed && w.StarsTransferred > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		return transferTime(s.Wishlist[idx[a]].LastTransferTime).After(
			transferTime(s.Wishlist[idx[b]].LastTransferTime))
	})

	reclaimed := 0
	for _, i := range idx {
		if reclaimed >= needed {
			break
		}
		w := &s.Wishlist[i]
		take := w.StarsTransferred
		if take > needed-reclaimed {
			take = needed - reclaimed
		}
		w.StarsTransferred -= take
		s.AvailableStars += take
		reclaimed += take

		if w.StarsTransferred == 0 {
			w.LastTransferTime = nil
		}
		if w.Completed && w.StarsTransferred < w.StarsNeeded {
			w.Completed = false
		}
	}
	return reclaimed
}

func transferTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
