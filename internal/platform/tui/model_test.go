package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
	"github.com/vovakirdan/lightbike/internal/registry"
	"github.com/vovakirdan/lightbike/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets  int
	resized [2]int
	last    core.MultiInputFrame
	result  *registry.MatchResult
	exit    bool
	closed  bool
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return core.GameState{Exit: g.exit} }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.State()} }

func (g *fakeGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) TakeResult() (registry.MatchResult, bool) {
	if g.result == nil {
		return registry.MatchResult{}, false
	}
	r := *g.result
	g.result = nil
	return r, true
}

func (g *fakeGame) Close() error {
	g.closed = true
	return nil
}

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
	return NewModel(g, store, cfg, NewKeyMap(config.DefaultTronConfig()), log.New(io.Discard))
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	next, _ := m.Update(runeKey('w'))
	next, _ = next.(Model).Update(TickMsg{})

	if !g.last.Player(core.Player1).Has(core.ActionUp) {
		t.Error("player 1 steering key did not reach StepMulti")
	}

	// Input is cleared after each tick
	next.(Model).Update(TickMsg{})
	if !g.last.Player(core.Player1).Empty() {
		t.Error("input frame was not cleared between ticks")
	}
}

func TestModelResize(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("Resize got %v, expected [100 30]", g.resized)
	}
	if g.resets != 0 {
		t.Error("a resizable game should not be reset on resize")
	}
	if w := next.(Model).screen.Width(); w != 100 {
		t.Errorf("screen width = %d, expected 100", w)
	}
}

func TestModelSavesResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &fakeGame{result: &registry.MatchResult{Players: 3, Winner: 2, DurationMs: 1500}}
	m := newTestModel(t, g, store)
	m.Update(TickMsg{})

	matches, err := store.RecentMatches("fake", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 saved match, got %d", len(matches))
	}
	if matches[0].Players != 3 || matches[0].Winner != 2 || matches[0].DurationMs != 1500 {
		t.Errorf("saved match = %+v", matches[0])
	}
}

func TestModelQuitsOnExit(t *testing.T) {
	g := &fakeGame{exit: true}
	m := newTestModel(t, g, nil)

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg when the game requests exit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty once quitting")
	}

	closeGame(g, log.New(io.Discard))
	if !g.closed {
		t.Error("closeGame did not close the game")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, nil)
	if view := m.View(); len(view) == 0 {
		t.Error("View() returned nothing")
	}
}
