package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/model"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the budget and its mode",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the daily budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetModeCmd = &cobra.Command{
	Use:   "mode <daily|monthly> [amount]",
	Short: "Choose this month's budget mode",
	Long: "Choose between a fixed daily budget and a monthly allowance spread\n" +
		"over the remaining days. The choice locks for the rest of the month.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runBudgetMode,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetModeCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	if err := l.SetDailyBudget(amount); err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	fmt.Printf("  Daily budget set to %s.\n", cli.FormatMoney(amount, currency(cfg)))
	return nil
}

func runBudgetMode(_ *cobra.Command, args []string) error {
	var mode model.BudgetMode
	switch args[0] {
	case "daily":
		mode = model.ModeDaily
	case "monthly":
		mode = model.ModeMonthly
	default:
		return fmt.Errorf("unknown mode %q (want daily or monthly)", args[0])
	}

	amount := 0
	if len(args) == 2 {
		var err error
		amount, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
	}
	if mode == model.ModeMonthly && amount <= 0 {
		return fmt.Errorf("monthly mode needs a positive allowance, e.g. `starledger budget mode monthly 1500`")
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	if err := l.ElectMode(mode, amount); err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	cur := currency(cfg)
	if mode == model.ModeMonthly {
		fmt.Printf("  Monthly mode: %s for the month, today's share is %s.\n",
			cli.FormatMoney(amount, cur), cli.FormatMoney(l.TodayBudget(), cur))
	} else {
		fmt.Printf("  Daily mode: %s per day.\n", cli.FormatMoney(state.Budget, cur))
	}
	fmt.Println("  Mode is locked until next month.")
	return nil
}
