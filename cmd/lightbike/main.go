// lightbike is a terminal light bike game for two to four players on one keyboard.
//
// Usage:
//
//	lightbike play              - Play a round (menu picks the player count)
//	lightbike list              - List available games
//	lightbike stats             - Show match history and wins per player
//	lightbike tracks [file...]  - Print the keyframes of animation tracks
//	lightbike serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed
//	--db <path>          - Set database path (default: ~/.lightbike/lightbike.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightbike/internal/games/tron"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "lightbike",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lightbike",
	Short: "Light Bike - a terminal light cycle duel",
	Long: `Light Bike puts two to four players on one keyboard. Every bike leaves a
solid trail; touching a wall or any trail ends your run. Last bike
standing wins the round.

Available commands:
  play     - Start the game
  list     - Show all available games
  stats    - View match history
  tracks   - Inspect animation tracks
  serve    - Start SSH server for remote play

Examples:
  lightbike play
  lightbike play --players 3
  lightbike stats
  lightbike tracks ./death.xml
  lightbike serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lightbike/lightbike.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogger applies --log-level and hands the logger to the game.
func setupLogger(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	tron.SetLogger(logger)
	return nil
}
