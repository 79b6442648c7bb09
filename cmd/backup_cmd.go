package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/backup"
	"github.com/theirongolddev/starledger/internal/config"
)

var flagImportLatest string

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the ledger to a JSON backup",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Replace the ledger with a JSON backup",
	Long: "Validate and load a backup file, replacing the current ledger.\n" +
		"The current file stays untouched if the backup does not check out.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportLatest, "latest", "", "Import the newest backup found in this directory")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	_, state, _, err := loadLedger()
	if err != nil {
		return err
	}

	path := backup.FileName(time.Now())
	if len(args) == 1 {
		path = args[0]
	}

	if err := backup.Export(state, path); err != nil {
		return err
	}

	fmt.Printf("  Exported %d history days and %d wishlist items to %s\n",
		len(state.History), len(state.Wishlist), path)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	var path string
	switch {
	case flagImportLatest != "":
		latest, err := backup.Latest(flagImportLatest)
		if err != nil {
			return err
		}
		path = latest
	case len(args) == 1:
		path = args[0]
	default:
		return fmt.Errorf("give a backup path or --latest <dir>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	state, err := backup.Import(path, time.Now())
	if err != nil {
		return err
	}

	if err := saveState(&state, cfg); err != nil {
		return err
	}

	fmt.Printf("  Imported %s\n", path)
	fmt.Printf("  Score %d, day %d, %d history days restored.\n",
		state.Score, state.Day, len(state.History))
	return nil
}
