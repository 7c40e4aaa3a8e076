package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyward/internal/scoresync"
)

var flagProfileQR bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show this device's player id and balance",
	Long: `Print the player id stored on this device, the points balance and
run statistics. With --qr the id is also printed as a QR code, which is
handy when support asks for it.

Examples:
  skyward profile
  skyward profile --qr`,
	Args: cobra.NoArgs,
	Run:  runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&flagProfileQR, "qr", false, "Print the player id as a QR code")
}

func runProfile(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	ctx := context.Background()

	id, err := localIdentity(cfg)
	if err != nil {
		fatalf("resolving player id: %v", err)
	}

	fmt.Printf("Player:  %s\n", id)

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open profile store: %v\n", err)
	} else {
		defer store.Close()
		p, err := scoresync.LoadProfile(ctx, store, id, cfg.Sync.LoadTimeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		fmt.Printf("Balance: %s points\n", humanize.Comma(int64(p.Points)))
		if p.Points >= cfg.Economy.RedeemThreshold {
			fmt.Printf("         eligible for %s\n", cfg.Economy.RewardLabel)
		} else {
			fmt.Printf("         %s more to redeem %s\n",
				humanize.Comma(int64(cfg.Economy.RedeemThreshold-p.Points)), cfg.Economy.RewardLabel)
		}

		if stats, err := store.ProfileStats(ctx, id); err == nil && stats.RunsCount > 0 {
			fmt.Printf("Runs:    %d (best %s, pipes %d, coins %d)\n",
				stats.RunsCount, humanize.Comma(int64(stats.HighScore)), stats.TotalPipes, stats.TotalCoins)
		}
	}

	if flagProfileQR {
		qr, err := qrcode.New(id, qrcode.Medium)
		if err != nil {
			fatalf("encoding QR code: %v", err)
		}
		fmt.Println()
		fmt.Print(qr.ToSmallString(false))
	}
}
