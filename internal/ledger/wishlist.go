package ledger

import (
	"math"
	"strings"

	"github.com/theirongolddev/starledger/internal/model"
)

const starCostUnit = 5 // 1 star per 5 currency units, before adjustments

// AddItem creates a wishlist goal. The star price is derived from the cost by
// the pricing rule, never supplied by the caller.
func (l *Ledger) AddItem(name string, cost int) (*model.WishlistItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if cost <= 0 {
		return nil, ErrInvalidAmount
	}

	id := l.now().UnixMilli()
	for l.state.WishItem(id) != nil {
		id++
	}

	l.state.Wishlist = append(l.state.Wishlist, model.WishlistItem{
		ID:          id,
		Name:        name,
		Cost:        cost,
		StarsNeeded: l.StarsFromCost(cost),
	})
	return &l.state.Wishlist[len(l.state.Wishlist)-1], nil
}

// StarsFromCost prices an item in stars. The base is ceil(cost/5), adjusted
// for current behavior (saving rate, streak, star balance) and a random
// jitter; the combined adjustment is clamped to ±30% of the base. The random
// term means identical calls can legitimately disagree.
func (l *Ledger) StarsFromCost(cost int) int {
	s := l.state
	base := (cost + starCostUnit - 1) / starCostUnit

	delta := 0.0
	if s.Monthly.TotalBudget > 0 {
		rate := float64(s.Monthly.TotalSaved) / float64(s.Monthly.TotalBudget)
		if rate > 0.3 {
			delta -= 0.20 * float64(base)
		} else if rate < 0.1 {
			delta += 0.10 * float64(base)
		}
	}
	if s.Streak >= 7 {
		delta -= 0.10 * float64(base)
	}
	if s.AvailableStars > 50 {
		delta -= 0.05 * float64(base)
	} else if s.AvailableStars < 10 {
		delta += 0.05 * float64(base)
	}
	delta += float64(l.rng.Intn(21) - 10)

	limit := 0.3 * float64(base)
	if delta > limit {
		delta = limit
	} else if delta < -limit {
		delta = -limit
	}

	stars := base + int(math.Round(delta))
	if stars < 1 {
		stars = 1
	}
	return stars
}

// TransferStars moves stars from the available balance into an item. The
// request is clamped to both the available balance and the item's remaining
// need, so asking for more than you have deposits what you can afford.
// Returns the number of stars actually moved.
func (l *Ledger) TransferStars(id int64, amount int) (int, error) {
	s := l.state
	item := s.WishItem(id)
	if item == nil {
		return 0, ErrItemNotFound
	}
	if item.Redeemed {
		return 0, ErrItemRedeemed
	}
	if item.Completed {
		return 0, ErrItemCompleted
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if s.AvailableStars == 0 {
		return 0, ErrNotEnoughStars
	}

	actual := amount
	if actual > s.AvailableStars {
		actual = s.AvailableStars
	}
	if actual > item.Remaining() {
		actual = item.Remaining()
	}

	item.StarsTransferred += actual
	s.AvailableStars -= actual
	now := l.now()
	item.LastTransferTime = &now

	if item.StarsTransferred >= item.StarsNeeded {
		item.StarsTransferred = item.StarsNeeded
		item.Completed = true
	}
	return actual, nil
}

// Redeem converts a completed item into a recorded, non-reversible spend.
// The item's cost is added to the monthly redeemed accumulator and the item
// leaves the active wishlist view.
func (l *Ledger) Redeem(id int64) (*model.WishlistItem, error) {
	item := l.state.WishItem(id)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Redeemed {
		return nil, ErrItemRedeemed
	}
	if !item.Completed {
		return nil, ErrItemNotCompleted
	}

	item.Redeemed = true
	l.state.Monthly.TotalRedeemed += item.Cost
	return item, nil
}

// Cancel removes an item, refunding any transferred stars in full.
func (l *Ledger) Cancel(id int64) (refunded int, err error) {
	s := l.state
	item := s.WishItem(id)
	if item == nil {
		return 0, ErrItemNotFound
	}
	if item.Redeemed {
		return 0, ErrItemRedeemed
	}

	refunded = item.StarsTransferred
	s.AvailableStars += refunded

	for i := range s.Wishlist {
		if s.Wishlist[i].ID == id {
			s.Wishlist = append(s.Wishlist[:i], s.Wishlist[i+1:]...)
			break
		}
	}
	return refunded, nil
}

// ActiveWishlist returns the items still shown to the player, redeemed ones
// filtered out.
func (l *Ledger) ActiveWishlist() []model.WishlistItem {
	var items []model.WishlistItem
	for _, w := range l.state.Wishlist {
		if !w.Redeemed {
			items = append(items, w)
		}
	}
	return items
}
