package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/config"
	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/store"
)

var flagHistoryDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show processed days",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 30, "Time window in days")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	_, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	now := time.Now()
	since := now.AddDate(0, 0, -flagHistoryDays)

	entries := historyEntries(state, cfg, since, now)
	if len(entries) == 0 {
		fmt.Println("  No days logged yet. Start with `starledger spend <amount>`.")
		return nil
	}

	cur := currency(cfg)
	rows := make([][]string, 0, len(entries))
	spentSeries := make([]float64, 0, len(entries))

	// Oldest first for reading and for the sparkline.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		outcome := cli.Good(cli.FormatPoints(e.Points))
		if e.Overspent {
			outcome = cli.Bad("overspent")
		}
		rows = append(rows, []string{
			cli.FormatDate(e.Date),
			cli.FormatMoney(e.Budget, cur),
			cli.FormatMoney(e.Spent, cur),
			cli.FormatMoney(e.Saved, cur),
			outcome,
		})
		spentSeries = append(spentSeries, float64(e.Spent))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Last %d days", flagHistoryDays),
		Headers: []string{"Day", "Budget", "Spent", "Saved", "Result"},
		Rows:    rows,
	}))
	fmt.Printf("  Spending: %s\n", cli.RenderSparkline(spentSeries))
	return nil
}

// historyEntries prefers the indexed archive for range queries and falls back
// to scanning the document when the archive is unavailable.
func historyEntries(state *model.State, cfg config.Config, since, until time.Time) []model.HistoryEntry {
	archive, err := store.OpenArchive(store.ArchivePath(dataDir(cfg)))
	if err == nil {
		defer func() { _ = archive.Close() }()
		if entries, qerr := archive.EntriesBetween(since, until); qerr == nil && len(entries) > 0 {
			return entries
		}
	}

	var out []model.HistoryEntry
	for i := len(state.History) - 1; i >= 0; i-- {
		e := state.History[i]
		if e.Date.Before(since) || e.Date.After(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}
