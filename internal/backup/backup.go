// Package backup handles JSON export and import of the ledger document.
// Import is all-or-nothing: a file that fails validation leaves the existing
// state untouched.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/store"
)

// ErrInvalidFile is the generic rejection for backups of the wrong shape.
// Details are deliberately not surfaced; the file either is a ledger backup
// or it is not.
var ErrInvalidFile = errors.New("invalid backup file")

const filePrefix = "starledger-backup-"

// FileName returns the dated default export name, e.g.
// starledger-backup-2026-08-29.json.
func FileName(now time.Time) string {
	return filePrefix + now.Format("2006-01-02") + ".json"
}

// Export writes a pretty-printed snapshot of the ledger to path.
func Export(state *model.State, path string) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// Import reads and validates a backup file, returning the replacement state.
// The only required shape is a top-level object whose history field is an
// array; everything else is backfilled the same way the live document is.
func Import(path string, now time.Time) (model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("reading backup: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil || probe == nil {
		return model.State{}, ErrInvalidFile
	}
	// A nil slice after a clean unmarshal means the field was null, not [].
	var history []json.RawMessage
	if err := json.Unmarshal(probe["history"], &history); err != nil || history == nil {
		return model.State{}, ErrInvalidFile
	}

	state, err := store.ParseDocument(data, now)
	if err != nil {
		return model.State{}, ErrInvalidFile
	}
	return state, nil
}

// Latest scans dir for exported backups and returns the newest by the date
// in its name.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scanning backup dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) > len(filePrefix) && name[:len(filePrefix)] == filePrefix &&
			filepath.Ext(name) == ".json" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errors.New("no backup files found")
	}

	// Dated names sort chronologically.
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
