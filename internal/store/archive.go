package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/starledger/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Archive mirrors processed days and redemption events into SQLite so the
// history views can query date ranges without loading the whole document.
// It is derived data: SyncState rebuilds the day mirror from the canonical
// document, and losing the file loses nothing but the redemption log.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database at the given path.
func OpenArchive(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SyncState rebuilds the history mirror from the canonical state.
func (a *Archive) SyncState(s *model.State) error {
	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range s.History {
		overspent := 0
		if e.Overspent {
			overspent = 1
		}
		_, err := tx.Exec(`INSERT OR REPLACE INTO history
			(day, date, spent, points, bonus, overspent, saved, budget, mode, synced_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.DayKey(e.Date), e.Date.UTC().Format(time.RFC3339),
			e.Spent, e.Points, e.Bonus, overspent, e.Saved, e.Budget, string(e.Mode), now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecordRedemption appends a redemption event to the log.
func (a *Archive) RecordRedemption(w model.WishlistItem, at time.Time) error {
	_, err := a.db.Exec(`INSERT OR REPLACE INTO redemptions
		(item_id, name, cost, stars, redeemed_at) VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Cost, w.StarsTransferred, at.UTC().Format(time.RFC3339),
	)
	return err
}

// EntriesBetween returns mirrored days whose date falls in [since, until),
// most recent first.
func (a *Archive) EntriesBetween(since, until time.Time) ([]model.HistoryEntry, error) {
	rows, err := a.db.Query(`SELECT date, spent, points, bonus, overspent, saved, budget, mode
		FROM history WHERE date >= ? AND date < ? ORDER BY date DESC`,
		since.UTC().Format(time.RFC3339), until.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var dateStr, mode string
		var overspent int
		if err := rows.Scan(&dateStr, &e.Spent, &e.Points, &e.Bonus, &overspent,
			&e.Saved, &e.Budget, &mode); err != nil {
			return nil, err
		}
		e.Date, _ = time.Parse(time.RFC3339, dateStr)
		e.Overspent = overspent != 0
		e.Mode = model.BudgetMode(mode)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Redemption is one entry of the redemption log.
type Redemption struct {
	ItemID     int64
	Name       string
	Cost       int
	Stars      int
	RedeemedAt time.Time
}

// Redemptions returns the full redemption log, most recent first.
func (a *Archive) Redemptions() ([]Redemption, error) {
	rows, err := a.db.Query(`SELECT item_id, name, cost, stars, redeemed_at
		FROM redemptions ORDER BY redeemed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []Redemption
	for rows.Next() {
		var r Redemption
		var at string
		if err := rows.Scan(&r.ItemID, &r.Name, &r.Cost, &r.Stars, &at); err != nil {
			return nil, err
		}
		r.RedeemedAt, _ = time.Parse(time.RFC3339, at)
		result = append(result, r)
	}
	return result, rows.Err()
}

// EntryCount returns the number of mirrored days.
func (a *Archive) EntryCount() (int, error) {
	var count int
	err := a.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	return count, err
}
