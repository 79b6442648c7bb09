// Package store persists the canonical ledger document and keeps a derived
// SQLite archive of processed days. The JSON document is the single source of
// truth; the archive is rebuildable from it at any time.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
)

// DocumentName is the canonical state file. The version suffix changes on
// breaking schema changes so older documents are left untouched.
const DocumentName = "ledger.v2.json"

// DefaultDir returns the XDG-compliant data directory.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "starledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "starledger")
}

// DocumentPath returns the full path of the state document in dir.
func DocumentPath(dir string) string {
	return filepath.Join(dir, DocumentName)
}

// ArchivePath returns the full path of the SQLite archive in dir.
func ArchivePath(dir string) string {
	return filepath.Join(dir, "archive.db")
}

// Load reads the ledger document from dir, returning a fresh game when no
// document exists yet. Documents written by older builds are migrated:
// missing fields are backfilled from defaults or derived from what is there.
func Load(dir string, now time.Time) (model.State, error) {
	state := model.DefaultState(now)

	data, err := os.ReadFile(DocumentPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("reading ledger: %w", err)
	}

	parsed, err := ParseDocument(data, now)
	if err != nil {
		return state, err
	}
	return parsed, nil
}

// ParseDocument decodes a ledger document, layering it over defaults so
// absent keys keep their default values, then migrating old shapes. Import
// uses the same path so backups from any version load like the live file.
func ParseDocument(data []byte, now time.Time) (model.State, error) {
	state := model.DefaultState(now)
	if err := json.Unmarshal(data, &state); err != nil {
		return model.DefaultState(now), fmt.Errorf("parsing ledger: %w", err)
	}
	migrate(&state, now)
	return state, nil
}

// Save writes the ledger document atomically (temp file + rename).
func Save(dir string, state *model.State) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp := DocumentPath(dir) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := os.Rename(tmp, DocumentPath(dir)); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// migrate backfills fields that older document versions did not record.
func migrate(s *model.State, now time.Time) {
	if s.BudgetMode == "" {
		s.BudgetMode = model.ModeDaily
	}
	if s.LastLifeReset == "" {
		s.LastLifeReset = model.MonthKey(now)
	}
	if s.Monthly.Month == "" {
		s.Monthly.Month = model.MonthKey(now)
	}
	if s.Day < 1 {
		s.Day = 1
	}

	for i := range s.History {
		e := &s.History[i]
		// Early versions recorded neither the day's budget nor the savings;
		// reconstruct both from the current budget.
		if e.Budget == 0 {
			e.Budget = s.Budget
		}
		if e.Saved == 0 && !e.Overspent {
			e.Saved = e.Budget - e.Spent
			if e.Saved < 0 {
				e.Saved = 0
			}
		}
		if e.Mode == "" {
			e.Mode = model.ModeDaily
		}
	}

	for i := range s.Wishlist {
		w := &s.Wishlist[i]
		if w.Cost == 0 {
			w.Cost = w.StarsNeeded * 5
		}
		if w.LastTransferTime == nil && w.StarsTransferred > 0 {
			// Best guess for pre-timestamp documents: the creation instant
			// encoded in the id.
			t := time.UnixMilli(w.ID)
			w.LastTransferTime = &t
		}
	}
}
