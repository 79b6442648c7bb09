package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagResetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the ledger and start from scratch",
	RunE:  runReset,
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Start a new game after running out of lives",
	Long: "Start over with full lives and a clean score. The configured\n" +
		"budget and budget mode are kept.",
	RunE: runRestart,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetForce, "force", "f", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(restartCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	if !flagResetForce {
		fmt.Printf("  This wipes %d history days, %d wishlist items and your score.\n",
			len(state.History), len(state.Wishlist))
		fmt.Print("  Type 'reset' to confirm: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "reset" {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	l.Reset()
	if err := saveState(state, cfg); err != nil {
		return err
	}

	fmt.Println("  Ledger wiped. Fresh game, day 1.")
	return nil
}

func runRestart(_ *cobra.Command, _ []string) error {
	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	l.Restart()
	if err := saveState(state, cfg); err != nil {
		return err
	}

	fmt.Println("  New game started. Full lives, budget settings kept.")
	return nil
}
