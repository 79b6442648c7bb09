package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/model"
)

var spendCmd = &cobra.Command{
	Use:   "spend <amount>",
	Short: "Log today's spending",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpend,
}

func init() {
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	result, err := l.ProcessDay(amount)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	if result.RolledOver {
		fmt.Println("  " + cli.Good("New month! Lives refilled."))
	}

	if result.Overspent {
		fmt.Println("  " + cli.Bad(result.Summary()))
		fmt.Printf("  Lives: %s\n", cli.FormatLives(state.Lives, model.MaxLives))
	} else {
		fmt.Println("  " + cli.Good(result.Summary()))
		if result.StarsEarned > 0 {
			fmt.Printf("  %s in the bank.\n", cli.Star(cli.FormatStars(state.AvailableStars)))
		}
	}

	if result.GameOver {
		fmt.Println("  " + cli.Bad("That was your last life. Run `starledger restart` to try again."))
	}
	return nil
}
