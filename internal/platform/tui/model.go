package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lightbike/internal/core"
	"github.com/vovakirdan/lightbike/internal/registry"
	"github.com/vovakirdan/lightbike/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case results are not recorded.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       keys,
		inputFrame: core.NewMultiInputFrame(),
		logger:     logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.Map(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var result core.StepResult
	if mg, ok := m.game.(registry.MultiPlayerGame); ok {
		result = mg.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame.Shared())
	}
	m.gameState = result.State

	m.saveResult()

	// Clear input for next frame
	m.inputFrame.Clear()

	if m.gameState.Exit {
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveResult records a finished round, if the game reported one.
func (m Model) saveResult() {
	rep, ok := m.game.(registry.MatchReporter)
	if !ok {
		return
	}
	res, ok := rep.TakeResult()
	if !ok || m.store == nil {
		return
	}

	_, err := m.store.SaveMatch(storage.Match{
		GameID:     m.game.ID(),
		Players:    res.Players,
		Winner:     res.Winner,
		DurationMs: res.DurationMs,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save match", "err", err)
	}
}

// saveScreenshot writes the current screen as text and as a PNG image.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".lightbike", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), timestamp))

	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		return err
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		return err
	}
	if err := core.WritePNG(f, m.screen); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	m.logger.Info("screenshot saved", "path", base+".png")
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// closeGame releases what the game holds once the program has ended.
func closeGame(game registry.Game, logger *log.Logger) {
	c, ok := game.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("closing game", "err", err)
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, keys KeyMap, logger *log.Logger) error {
	model := NewModel(game, store, cfg, keys, logger)
	defer closeGame(game, model.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
