package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lightbike/internal/platform/tui"
	"github.com/vovakirdan/lightbike/internal/registry"
	"github.com/vovakirdan/lightbike/internal/storage"
)

var (
	flagStatsPlain bool
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show match history",
	Long: `Show recent rounds and the number of wins of each player slot.

Examples:
  lightbike stats
  lightbike stats --plain
  lightbike stats --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsPlain, "plain", false, "Print a summary instead of the interactive table")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the match history")
}

func runStats(_ *cobra.Command, args []string) error {
	gameID := "tron"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearMatches(gameID); err != nil {
			return err
		}
		fmt.Printf("Match history for %s cleared.\n", gameID)
		return nil
	}

	if flagStatsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printStats(store, gameID)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunStats(store, gameID, width, height)
}

func printStats(store *storage.Store, gameID string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	if stats.MatchCount == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	wins, err := store.WinCounts(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Rounds:   %d\n", stats.MatchCount)
	fmt.Printf("Draws:    %d\n", stats.Draws)
	fmt.Printf("Average:  %.1fs\n", stats.AvgDurationMs/1000)
	fmt.Printf("Longest:  %.1fs\n", float64(stats.LongestMs)/1000)
	fmt.Printf("Last:     %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Println()
	for seat := 1; seat <= 4; seat++ {
		fmt.Printf("  Player %d  %d wins\n", seat, wins[seat])
	}
	return nil
}
