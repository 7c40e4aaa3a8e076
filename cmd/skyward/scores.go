package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyward/internal/platform/tui"
)

var (
	flagScoresAll   bool
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs for this device's player, or for all
players with --all.

Examples:
  skyward scores
  skyward scores --all --limit 20
  skyward scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show runs of all players")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	ctx := context.Background()

	store, err := openStore(cfg)
	if err != nil {
		fatalf("opening profile store: %v", err)
	}
	defer store.Close()

	id, err := localIdentity(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not resolve player id: %v\n", err)
	}
	profileID := id
	if flagScoresAll {
		profileID = ""
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(ctx, store, profileID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(ctx, profileID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	if flagScoresAll {
		fmt.Println("Best Runs - all players")
	} else {
		fmt.Printf("Best Runs - %s\n", id)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyward play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %s\n", "Rank", "Points", "Pipes", "Coins", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-10s  %-5d  %-5d  %s\n",
			i+1, humanize.Comma(int64(e.Score)), e.Pipes, e.Coins, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if !flagScoresAll {
		fmt.Println()
		if best, err := store.HighScore(ctx, id); err == nil {
			fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
		}
	}
}
