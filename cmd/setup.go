package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to starledger!")
	fmt.Println()

	// 1. Currency
	fmt.Println("  1. Currency symbol")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	cur, _ := reader.ReadString('\n')
	cur = strings.TrimSpace(cur)
	if cur != "" {
		cfg.General.Currency = cur
	}
	fmt.Println()

	// 2. Default daily budget
	fmt.Println("  2. Default daily budget")
	fmt.Printf("     Current: %d\n", cfg.General.DefaultBudget)
	fmt.Print("     > ")
	budgetStr, _ := reader.ReadString('\n')
	budgetStr = strings.TrimSpace(budgetStr)
	if budgetStr != "" {
		if budget, err := strconv.Atoi(budgetStr); err == nil && budget > 0 {
			cfg.General.DefaultBudget = budget
		} else {
			fmt.Println("     Not a positive number, keeping current value.")
		}
	}
	fmt.Println()

	// 3. Evening reminder
	fmt.Println("  3. Evening reminder (daemon)")
	fmt.Println("     (1) 20:00 [default]")
	fmt.Println("     (2) 21:00")
	fmt.Println("     (3) off")
	fmt.Print("     > ")
	remindChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(remindChoice) {
	case "2":
		cfg.Notifications.Enabled = true
		cfg.Notifications.Schedule = []string{"0 21 * * *"}
	case "3":
		cfg.Notifications.Enabled = false
	default:
		cfg.Notifications.Enabled = true
		cfg.Notifications.Schedule = []string{"0 20 * * *"}
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `starledger setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
