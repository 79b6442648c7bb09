package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/model"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <amount>",
	Short: "Correct today's logged spending",
	Long: "Replace today's recorded spending with the right amount. Points,\n" +
		"stars, streak and XP are rebalanced; stars already moved to wishlist\n" +
		"items are reclaimed from the most recent deposits if needed.",
	Args: cobra.ExactArgs(1),
	RunE: runAdjust,
}

func init() {
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(_ *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	result, err := l.AdjustToday(amount)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	cur := currency(cfg)
	fmt.Printf("  Today corrected to %s.\n", cli.FormatMoney(result.Spent, cur))
	if result.Overspent {
		fmt.Println("  " + cli.Bad(result.Summary()))
		fmt.Printf("  Lives: %s\n", cli.FormatLives(state.Lives, model.MaxLives))
	} else {
		fmt.Println("  " + cli.Good(result.Summary()))
	}
	fmt.Printf("  Stars available: %d\n", state.AvailableStars)
	return nil
}
