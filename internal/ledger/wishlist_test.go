package ledger

import (
	"testing"

	"github.com/theirongolddev/starledger/internal/model"
)

func TestAddItem_Validation(t *testing.T) {
	l, _, _ := newTestLedger(t, noBonus)

	if _, err := l.AddItem("   ", 100); err != ErrEmptyName {
		t.Errorf("empty name = %v, want ErrEmptyName", err)
	}
	if _, err := l.AddItem("Camera", 0); err != ErrInvalidAmount {
		t.Errorf("zero cost = %v, want ErrInvalidAmount", err)
	}
	if _, err := l.AddItem("Camera", -10); err != ErrInvalidAmount {
		t.Errorf("negative cost = %v, want ErrInvalidAmount", err)
	}
}

func TestAddItem_UniqueIDs(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)

	// Same millisecond on a frozen clock still yields distinct ids.
	a, err := l.AddItem("One", 50)
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.AddItem("Two", 50)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatalf("both items got id %d", a.ID)
	}
	if len(s.Wishlist) != 2 {
		t.Fatalf("wishlist length = %d, want 2", len(s.Wishlist))
	}
}

func TestStarsFromCost(t *testing.T) {
	cases := []struct {
		name  string
		setup func(s *model.State)
		rng   stubRand
		cost  int
		want  int
	}{
		{
			// No monthly history, balance in the neutral band, zero jitter.
			name:  "neutral state gives the base price",
			setup: func(s *model.State) { s.AvailableStars = 20 },
			rng:   stubRand{jitter: 10},
			cost:  100,
			want:  20,
		},
		{
			name: "every discount active clamps at -30%",
			setup: func(s *model.State) {
				s.Monthly = model.MonthlySummary{TotalBudget: 100, TotalSaved: 50}
				s.Streak = 7
				s.AvailableStars = 60
			},
			rng:  stubRand{jitter: 0}, // jitter -10
			cost: 100,                 // base 20; raw delta -4-2-1-10 = -17, clamp -6
			want: 14,
		},
		{
			name: "low saving rate and low balance add a premium",
			setup: func(s *model.State) {
				s.Monthly = model.MonthlySummary{TotalBudget: 100, TotalSaved: 5}
				s.AvailableStars = 2
			},
			rng:  stubRand{jitter: 10},
			cost: 100, // base 20; +10% +5% = +3
			want: 23,
		},
		{
			name: "positive jitter clamps at +30%",
			setup: func(s *model.State) { s.AvailableStars = 20 },
			rng:  stubRand{jitter: 20}, // jitter +10
			cost: 100,                  // base 20; clamp +6
			want: 26,
		},
		{
			name:  "price never drops below one star",
			setup: func(s *model.State) { s.AvailableStars = 20 },
			rng:   stubRand{jitter: 0}, // jitter -10, clamp -0.6, round -1
			cost:  10,                  // base 2
			want:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, s, _ := newTestLedger(t, tc.rng)
			tc.setup(s)
			if got := l.StarsFromCost(tc.cost); got != tc.want {
				t.Errorf("StarsFromCost(%d) = %d, want %d", tc.cost, got, tc.want)
			}
		})
	}
}

func TestTransferStars_PartialWhenShortOnStars(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.AvailableStars = 4
	s.Wishlist = []model.WishlistItem{{ID: 1, Name: "Lamp", Cost: 50, StarsNeeded: 10}}

	moved, err := l.TransferStars(1, 10)
	if err != nil {
		t.Fatalf("TransferStars: %v", err)
	}
	if moved != 4 {
		t.Errorf("moved = %d, want 4 (clamped to balance)", moved)
	}

	w := s.WishItem(1)
	if w.Completed {
		t.Error("item must remain incomplete")
	}
	if w.StarsTransferred != 4 {
		t.Errorf("StarsTransferred = %d, want 4", w.StarsTransferred)
	}
	if s.AvailableStars != 0 {
		t.Errorf("AvailableStars = %d, want 0", s.AvailableStars)
	}
	if w.LastTransferTime == nil {
		t.Error("LastTransferTime should be recorded")
	}
}

func TestTransferStars_CompletionCapsAtGoal(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.AvailableStars = 12
	s.Wishlist = []model.WishlistItem{{ID: 1, Name: "Lamp", Cost: 50, StarsNeeded: 10}}

	moved, err := l.TransferStars(1, 12)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 10 {
		t.Errorf("moved = %d, want 10 (clamped to remaining need)", moved)
	}

	w := s.WishItem(1)
	if !w.Completed {
		t.Error("item should be completed")
	}
	if w.StarsTransferred != 10 {
		t.Errorf("StarsTransferred = %d, want capped 10", w.StarsTransferred)
	}
	if s.AvailableStars != 2 {
		t.Errorf("AvailableStars = %d, want 2", s.AvailableStars)
	}
}

func TestTransferStars_Rejections(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.AvailableStars = 5
	s.Wishlist = []model.WishlistItem{
		{ID: 1, Name: "Done", Cost: 10, StarsNeeded: 2, StarsTransferred: 2, Completed: true},
		{ID: 2, Name: "Open", Cost: 50, StarsNeeded: 10},
	}

	if _, err := l.TransferStars(99, 1); err != ErrItemNotFound {
		t.Errorf("missing item = %v, want ErrItemNotFound", err)
	}
	if _, err := l.TransferStars(1, 1); err != ErrItemCompleted {
		t.Errorf("completed item = %v, want ErrItemCompleted", err)
	}
	if _, err := l.TransferStars(2, 0); err != ErrInvalidAmount {
		t.Errorf("zero amount = %v, want ErrInvalidAmount", err)
	}

	s.AvailableStars = 0
	if _, err := l.TransferStars(2, 3); err != ErrNotEnoughStars {
		t.Errorf("no stars = %v, want ErrNotEnoughStars", err)
	}
}

func TestRedeem(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.Wishlist = []model.WishlistItem{
		{ID: 1, Name: "Lamp", Cost: 50, StarsNeeded: 10, StarsTransferred: 10, Completed: true},
		{ID: 2, Name: "Open", Cost: 30, StarsNeeded: 6, StarsTransferred: 1},
	}

	if _, err := l.Redeem(2); err != ErrItemNotCompleted {
		t.Fatalf("redeem incomplete = %v, want ErrItemNotCompleted", err)
	}

	item, err := l.Redeem(1)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !item.Redeemed {
		t.Error("item should be marked redeemed")
	}
	if s.Monthly.TotalRedeemed != 50 {
		t.Errorf("TotalRedeemed = %d, want 50", s.Monthly.TotalRedeemed)
	}

	if _, err := l.Redeem(1); err != ErrItemRedeemed {
		t.Errorf("double redeem = %v, want ErrItemRedeemed", err)
	}

	active := l.ActiveWishlist()
	if len(active) != 1 || active[0].ID != 2 {
		t.Errorf("active wishlist = %+v, want only item 2", active)
	}
}

func TestCancel_RefundsTransferredStars(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.AvailableStars = 1
	s.Wishlist = []model.WishlistItem{
		{ID: 1, Name: "Lamp", Cost: 50, StarsNeeded: 10, StarsTransferred: 4},
	}

	refunded, err := l.Cancel(1)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if refunded != 4 {
		t.Errorf("refunded = %d, want 4", refunded)
	}
	if s.AvailableStars != 5 {
		t.Errorf("AvailableStars = %d, want 5", s.AvailableStars)
	}
	if len(s.Wishlist) != 0 {
		t.Error("cancelled item should be removed")
	}
}

func TestCancel_RedeemedItemRefused(t *testing.T) {
	l, s, _ := newTestLedger(t, noBonus)
	s.Wishlist = []model.WishlistItem{
		{ID: 1, Name: "Lamp", Cost: 50, StarsNeeded: 10, StarsTransferred: 10,
			Completed: true, Redeemed: true},
	}

	if _, err := l.Cancel(1); err != ErrItemRedeemed {
		t.Fatalf("cancel redeemed = %v, want ErrItemRedeemed", err)
	}
	if len(s.Wishlist) != 1 {
		t.Error("redeemed item must stay recorded")
	}
}
