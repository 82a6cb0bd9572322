package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
	"github.com/vovakirdan/lightbike/internal/games/tron"
	"github.com/vovakirdan/lightbike/internal/platform/tui"
	"github.com/vovakirdan/lightbike/internal/registry"
	"github.com/vovakirdan/lightbike/internal/storage"
)

var (
	flagConfig  string
	flagPlayers int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Light Bike",
	Long: `Start the game in this terminal.

Controls (default bindings, north/east/south/west):
  Player 1   - w/d/s/a
  Player 2   - arrow keys
  Player 3   - i/l/k/j
  Player 4   - t/h/g/f
  Up/Down    - Move the menu cursor
  Enter      - Select
  Esc        - Pause
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Steering keys are configurable in tron.yaml.

Examples:
  lightbike play
  lightbike play --players 4
  lightbike play --config ./my-tron.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagPlayers, "players", 0, "Player count 2-4 (0 = choose in the menu)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagPlayers != 0 && (flagPlayers < 2 || flagPlayers > config.MaxPlayers) {
		return fmt.Errorf("--players must be between 2 and %d", config.MaxPlayers)
	}

	gameCfg, err := config.LoadTron(flagConfig)
	if err != nil {
		return err
	}

	// The TUI owns the terminal from here on
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.Warn("logging to stderr", "err", err)
	}

	tron.SetConfigPath(flagConfig)
	tron.SetPlayers(flagPlayers)

	game, err := registry.Create("tron")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database, results will not be saved", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.Run(game, store, cfg, tui.NewKeyMap(gameCfg), logger)
}

// openLogFile opens ~/.lightbike/lightbike.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".lightbike")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "lightbike.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
