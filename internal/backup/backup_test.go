package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func TestFileName(t *testing.T) {
	if got := FileName(testNow); got != "starledger-backup-2026-08-29.json" {
		t.Errorf("FileName = %q", got)
	}
}

func TestExportImport_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName(testNow))

	state := model.DefaultState(testNow)
	state.Score = 250
	state.AvailableStars = 12
	state.History = []model.HistoryEntry{
		{Date: testNow, Spent: 30, Points: 40, Saved: 20, Budget: 50, Mode: model.ModeDaily},
	}

	if err := Export(&state, path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	imported, err := Import(path, testNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported.Score != 250 || imported.AvailableStars != 12 {
		t.Errorf("imported score/stars = %d/%d, want 250/12",
			imported.Score, imported.AvailableStars)
	}
	if len(imported.History) != 1 {
		t.Errorf("imported history length = %d, want 1", len(imported.History))
	}
}

func TestImport_RejectsWrongShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{nope"},
		{"json null", "null"},
		{"array at top level", "[1, 2, 3]"},
		{"missing history", `{"budget": 50}`},
		{"history not an array", `{"history": {"a": 1}}`},
		{"history null", `{"history": null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "backup.json")
			if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Import(path, testNow); err != ErrInvalidFile {
				t.Errorf("Import(%s) = %v, want ErrInvalidFile", tc.name, err)
			}
		})
	}
}

func TestImport_EmptyHistoryIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"history": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	state, err := Import(path, testNow)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	// Absent fields come back as defaults.
	if state.Budget != 50 || state.Lives != model.MaxLives {
		t.Errorf("budget/lives = %d/%d, want defaults 50/3", state.Budget, state.Lives)
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"starledger-backup-2026-08-01.json",
		"starledger-backup-2026-08-20.json",
		"starledger-backup-2026-07-30.json",
		"unrelated.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if filepath.Base(got) != "starledger-backup-2026-08-20.json" {
		t.Errorf("Latest = %q, want the 2026-08-20 backup", got)
	}
}

func TestLatest_EmptyDir(t *testing.T) {
	if _, err := Latest(t.TempDir()); err == nil {
		t.Fatal("Latest on empty dir should fail")
	}
}
