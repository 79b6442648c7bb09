// Package cmd implements the starledger CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Printf("    Default budget: %d\n", cfg.General.DefaultBudget)
	fmt.Printf("    Data directory: %s\n", dataDir(cfg))
	fmt.Println()

	fmt.Println("  [Notifications]")
	fmt.Printf("    Enabled:  %v\n", cfg.Notifications.Enabled)
	if len(cfg.Notifications.Schedule) > 0 {
		fmt.Printf("    Schedule: %s\n", strings.Join(cfg.Notifications.Schedule, ", "))
	}
	fmt.Printf("    Address:  %s\n", cfg.Notifications.Addr)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `starledger setup` to reconfigure.")
	return nil
}
