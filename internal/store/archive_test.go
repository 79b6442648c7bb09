package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_SyncAndQuery(t *testing.T) {
	a := openTestArchive(t)

	state := model.DefaultState(testNow)
	state.History = []model.HistoryEntry{
		{Date: testNow.AddDate(0, 0, -2), Spent: 20, Points: 60, Saved: 30, Budget: 50, Mode: model.ModeDaily},
		{Date: testNow.AddDate(0, 0, -1), Spent: 70, Overspent: true, Budget: 50, Mode: model.ModeDaily},
		{Date: testNow, Spent: 30, Points: 40, Saved: 20, Budget: 50, Mode: model.ModeDaily},
	}

	if err := a.SyncState(&state); err != nil {
		t.Fatalf("SyncState: %v", err)
	}

	count, err := a.EntryCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("EntryCount = %d, want 3", count)
	}

	entries, err := a.EntriesBetween(testNow.AddDate(0, 0, -1), testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("EntriesBetween: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Spent != 30 {
		t.Errorf("most recent entry spent = %d, want 30", entries[0].Spent)
	}
	if !entries[1].Overspent {
		t.Error("second entry should be the overspent day")
	}
}

func TestArchive_SyncIsRebuild(t *testing.T) {
	a := openTestArchive(t)

	state := model.DefaultState(testNow)
	state.History = []model.HistoryEntry{
		{Date: testNow, Spent: 30, Points: 40, Saved: 20, Budget: 50, Mode: model.ModeDaily},
	}
	if err := a.SyncState(&state); err != nil {
		t.Fatal(err)
	}

	// An adjusted entry replaces the mirrored day instead of duplicating it.
	state.History[0].Spent = 10
	state.History[0].Points = 80
	if err := a.SyncState(&state); err != nil {
		t.Fatal(err)
	}

	count, _ := a.EntryCount()
	if count != 1 {
		t.Fatalf("EntryCount = %d, want 1 after resync", count)
	}
	entries, err := a.EntriesBetween(testNow.Add(-time.Hour), testNow.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Spent != 10 || entries[0].Points != 80 {
		t.Errorf("resynced entry = %+v, want spent 10 points 80", entries[0])
	}
}

func TestArchive_RedemptionLog(t *testing.T) {
	a := openTestArchive(t)

	item := model.WishlistItem{
		ID: 1723700000000, Name: "Lamp", Cost: 50,
		StarsNeeded: 10, StarsTransferred: 10, Completed: true, Redeemed: true,
	}
	if err := a.RecordRedemption(item, testNow); err != nil {
		t.Fatalf("RecordRedemption: %v", err)
	}

	log, err := a.Redemptions()
	if err != nil {
		t.Fatalf("Redemptions: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("log length = %d, want 1", len(log))
	}
	r := log[0]
	if r.Name != "Lamp" || r.Cost != 50 || r.Stars != 10 {
		t.Errorf("redemption = %+v, want Lamp/50/10", r)
	}
	if !r.RedeemedAt.Equal(testNow) {
		t.Errorf("RedeemedAt = %v, want %v", r.RedeemedAt, testNow)
	}
}
