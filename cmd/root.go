package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/config"
	"github.com/theirongolddev/starledger/internal/ledger"
	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/store"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "starledger",
	Short: "Gamified budget tracker",
	Long:  "Track daily spending, earn points and stars, and save toward wishlist goals.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger data directory (default XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress decorative output")
}

// dataDir resolves the ledger directory: flag, then config, then XDG default.
func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return store.DefaultDir()
}

// loadLedger is the shared loading path used by all commands. The returned
// ledger shares the returned state; save the state after mutating.
func loadLedger() (*ledger.Ledger, *model.State, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}

	state, err := store.Load(dataDir(cfg), time.Now())
	if err != nil {
		return nil, nil, cfg, err
	}

	l := ledger.New(&state)
	return l, &state, cfg, nil
}

// saveState persists the document and refreshes the derived SQLite archive.
// Archive failures are reported but never block the save.
func saveState(state *model.State, cfg config.Config) error {
	dir := dataDir(cfg)
	if err := store.Save(dir, state); err != nil {
		return err
	}

	archive, err := store.OpenArchive(store.ArchivePath(dir))
	if err == nil {
		defer func() { _ = archive.Close() }()
		err = archive.SyncState(state)
	}
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  archive sync skipped: %v\n", err)
	}
	return nil
}

func currency(cfg config.Config) string {
	if cfg.General.Currency != "" {
		return cfg.General.Currency
	}
	return "€"
}
