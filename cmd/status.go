package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current game state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	// A status check can itself trigger the month rollover.
	rolled := l.CheckRollover()
	if rolled {
		if err := saveState(state, cfg); err != nil {
			return err
		}
	}

	cur := currency(cfg)
	now := time.Now()

	fmt.Println()
	if !flagQuiet {
		fmt.Println(cli.RenderTitle("STARLEDGER"))
		fmt.Println()
	}
	if rolled {
		fmt.Println("  " + cli.Good("New month! Lives refilled, pick a budget mode."))
		fmt.Println()
	}
	if state.GameOver() {
		fmt.Println("  " + cli.Bad("Game over. Run `starledger restart` to try again."))
		fmt.Println()
	}

	rows := [][]string{
		{"Day", fmt.Sprintf("%d", state.Day)},
		{"Score", cli.FormatNumber(int64(state.Score))},
		{"Lives", cli.FormatLives(state.Lives, model.MaxLives)},
		{"Streak", fmt.Sprintf("%d days", state.Streak)},
		{"Level XP", cli.RenderProgressBar(int(state.LevelXP), 100, 20)},
		{"Stars", cli.FormatStars(state.AvailableStars)},
	}

	if state.ModeElected(now) {
		rows = append(rows, []string{"Mode", string(state.BudgetMode)})
		rows = append(rows, []string{"Today's budget", cli.FormatMoney(l.TodayBudget(), cur)})
	} else {
		rows = append(rows, []string{"Mode", "not chosen, run `starledger budget mode`"})
	}

	if entry := state.TodayEntry(now); entry != nil {
		rows = append(rows, []string{"Today", fmt.Sprintf("logged, spent %s", cli.FormatMoney(entry.Spent, cur))})
	} else {
		rows = append(rows, []string{"Today", "not logged yet"})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Ledger",
		Rows:  rows,
	}))

	fmt.Println()
	fmt.Println("  Achievements")
	for _, a := range l.Achievements() {
		fmt.Printf("    %s\n", cli.RenderBadge(a.Name, a.Unlocked))
	}
	fmt.Println()

	return nil
}
