package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/starledger/internal/cli"
	"github.com/theirongolddev/starledger/internal/store"
)

var wishCmd = &cobra.Command{
	Use:   "wish",
	Short: "Manage wishlist savings goals",
}

var wishAddCmd = &cobra.Command{
	Use:   "add <name> <cost>",
	Short: "Add a wishlist item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWishAdd,
}

var wishListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show wishlist items and their progress",
	RunE:  runWishList,
}

var wishTransferCmd = &cobra.Command{
	Use:   "transfer <id> <stars>",
	Short: "Move stars onto a wishlist item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWishTransfer,
}

var wishRedeemCmd = &cobra.Command{
	Use:   "redeem <id>",
	Short: "Redeem a completed item",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishRedeem,
}

var wishCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Remove an item and refund its stars",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishCancel,
}

func init() {
	wishCmd.AddCommand(wishAddCmd)
	wishCmd.AddCommand(wishListCmd)
	wishCmd.AddCommand(wishTransferCmd)
	wishCmd.AddCommand(wishRedeemCmd)
	wishCmd.AddCommand(wishCancelCmd)
	rootCmd.AddCommand(wishCmd)
}

func runWishAdd(_ *cobra.Command, args []string) error {
	cost, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid cost %q", args[1])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	item, err := l.AddItem(args[0], cost)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	fmt.Printf("  Added %q (%s), priced at %s.\n",
		item.Name, cli.FormatMoney(item.Cost, currency(cfg)), cli.FormatStars(item.StarsNeeded))
	fmt.Printf("  ID: %d\n", item.ID)
	return nil
}

func runWishList(_ *cobra.Command, _ []string) error {
	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	items := l.ActiveWishlist()
	if len(items) == 0 {
		fmt.Println("  Wishlist is empty. Add a goal with `starledger wish add <name> <cost>`.")
		return nil
	}

	cur := currency(cfg)
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		rows = append(rows, []string{
			w.Name,
			strconv.FormatInt(w.ID, 10),
			cli.FormatMoney(w.Cost, cur),
			cli.RenderProgressBar(w.StarsTransferred, w.StarsNeeded, 12),
			string(w.Status()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Wishlist",
		Headers: []string{"Item", "ID", "Cost", "Stars", "Status"},
		Rows:    rows,
	}))
	fmt.Printf("  Available: %s\n", cli.FormatStars(state.AvailableStars))
	return nil
}

func runWishTransfer(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid star amount %q", args[1])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	moved, err := l.TransferStars(id, stars)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	item := state.WishItem(id)
	if moved < stars {
		fmt.Printf("  Moved %d of %d requested stars (that's all you had free).\n", moved, stars)
	} else {
		fmt.Printf("  Moved %s.\n", cli.FormatStars(moved))
	}
	if item != nil && item.Completed {
		fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("%q is fully funded! Redeem it with `starledger wish redeem %d`.", item.Name, item.ID)))
	} else if item != nil {
		fmt.Printf("  %q needs %d more.\n", item.Name, item.Remaining())
	}
	return nil
}

func runWishRedeem(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	item, err := l.Redeem(id)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	// Redemptions also land in the archive's permanent log.
	if archive, aerr := store.OpenArchive(store.ArchivePath(dataDir(cfg))); aerr == nil {
		_ = archive.RecordRedemption(*item, time.Now())
		_ = archive.Close()
	}

	fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("Redeemed %q. Treat yourself!", item.Name)))
	fmt.Printf("  %s added to this month's redeemed total.\n", cli.FormatMoney(item.Cost, currency(cfg)))
	return nil
}

func runWishCancel(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	l, state, cfg, err := loadLedger()
	if err != nil {
		return err
	}

	refunded, err := l.Cancel(id)
	if err != nil {
		return err
	}
	if err := saveState(state, cfg); err != nil {
		return err
	}

	if refunded > 0 {
		fmt.Printf("  Item removed, %s refunded.\n", cli.FormatStars(refunded))
	} else {
		fmt.Println("  Item removed.")
	}
	return nil
}
