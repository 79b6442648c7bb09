package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/store"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show the month-to-date summary",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	l.CheckRollover()
	l.RecomputeMonthly()

	cur := currency(cfg)
	m := state.Monthly

	rows := [][]string{
		{"Month", m.Month},
		{"Total budget", cli.FormatMoney(m.TotalBudget, cur)},
		{"Total spent", cli.FormatMoney(m.TotalSpent, cur)},
		{"Total saved", cli.FormatMoney(m.TotalSaved, cur)},
		{"Total redeemed", cli.FormatMoney(m.TotalRedeemed, cur)},
	}
	if m.TotalBudget > 0 {
		rows = append(rows, []string{"Spent vs budget",
			cli.FormatPercent(float64(m.TotalSpent) / float64(m.TotalBudget))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "This month",
		Rows:  rows,
	}))

	// Past redemptions survive resets in the archive log.
	if archive, aerr := store.OpenArchive(store.ArchivePath(dataDir(cfg))); aerr == nil {
		defer func() { _ = archive.Close() }()
		if log, lerr := archive.Redemptions(); lerr == nil && len(log) > 0 {
			rows := make([][]string, 0, len(log))
			for _, r := range log {
				rows = append(rows, []string{
					r.Name,
					cli.FormatMoney(r.Cost, cur),
					fmt.Sprintf("%d", r.Stars),
					cli.FormatDate(r.RedeemedAt),
				})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Redemption log",
				Headers: []string{"Item", "Cost", "Stars", "When"},
				Rows:    rows,
			}))
		}
	}

	return nil
}
