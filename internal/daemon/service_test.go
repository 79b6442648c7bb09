package daemon

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

var testNow = time.Date(2026, 8, 15, 20, 0, 0, 0, time.UTC)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Score: 100, AvailableStars: 10, Lives: 3}
	curr := Snapshot{Score: 140, AvailableStars: 14, Lives: 2}

	delta := diffSnapshots(prev, curr)
	if delta.Score != 40 {
		t.Fatalf("Score delta = %d, want 40", delta.Score)
	}
	if delta.Stars != 4 {
		t.Fatalf("Stars delta = %d, want 4", delta.Stars)
	}
	if delta.Lives != -1 {
		t.Fatalf("Lives delta = %d, want -1", delta.Lives)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DataDir:      ".",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestSnapshotFromState(t *testing.T) {
	state := model.DefaultState(testNow)
	state.Score = 200
	state.AvailableStars = 8
	state.Streak = 4
	state.Wishlist = []model.WishlistItem{
		{ID: 1, Name: "Book", StarsNeeded: 5},
		{ID: 2, Name: "Lamp", StarsNeeded: 10, Redeemed: true},
	}

	snap := snapshotFromState(&state, testNow)

	if snap.Score != 200 || snap.AvailableStars != 8 || snap.Streak != 4 {
		t.Errorf("snapshot = %+v, want score 200 stars 8 streak 4", snap)
	}
	if snap.TodayBudget != 50 {
		t.Errorf("TodayBudget = %d, want 50", snap.TodayBudget)
	}
	if snap.TodayLogged {
		t.Error("TodayLogged should be false with empty history")
	}
	if snap.WishlistOpen != 1 {
		t.Errorf("WishlistOpen = %d, want 1 (redeemed excluded)", snap.WishlistOpen)
	}

	state.History = []model.HistoryEntry{
		{Date: testNow, Spent: 30, Points: 40, Saved: 20, Budget: 50, Mode: model.ModeDaily},
	}
	snap = snapshotFromState(&state, testNow)
	if !snap.TodayLogged || snap.TodaySpent != 30 {
		t.Errorf("logged snapshot = %+v, want today logged with spent 30", snap)
	}
}

func TestReminderMessage(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string // substring, "" for no reminder
	}{
		{"unlogged day", Snapshot{TodayBudget: 40, Lives: 3}, "Budget left: €40"},
		{"logged day is quiet", Snapshot{TodayLogged: true, Lives: 3}, ""},
		{"last life warning", Snapshot{TodayBudget: 40, Lives: 1}, "One life left"},
		{"game over", Snapshot{GameOver: true}, "starledger restart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReminderMessage(tt.snap, "€")
			if tt.want == "" {
				if got != "" {
					t.Errorf("ReminderMessage = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ReminderMessage = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
