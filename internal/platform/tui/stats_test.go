package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lightbike/internal/storage"
)

func TestStatsModelEmpty(t *testing.T) {
	m := NewStatsModel(nil, "tron", 100, 30)
	if !strings.Contains(m.View(), "No database available") {
		t.Error("expected the no-database message without a store")
	}
}

func TestStatsModelHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	store.SaveMatch(storage.Match{GameID: "tron", Players: 2, Winner: 2, DurationMs: 5000})
	store.SaveMatch(storage.Match{GameID: "tron", Players: 3, Winner: 0, DurationMs: 2500})

	m := NewStatsModel(store, "tron", 100, 30)
	if len(m.matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(m.matches))
	}

	view := m.View()
	for _, want := range []string{"MATCH HISTORY", "Player 2", "Draw", "Wins"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	m = updated.(StatsModel)
	if len(m.matches) != 0 {
		t.Errorf("expected history cleared, got %d matches", len(m.matches))
	}
}

func TestStatsModelNarrowHidesSidebar(t *testing.T) {
	m := NewStatsModel(nil, "tron", 60, 20)
	if m.showSidebar {
		t.Error("sidebar should be hidden below the minimum width")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !updated.(StatsModel).showSidebar {
		t.Error("sidebar should appear after widening the window")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(2540); got != "2.5s" {
		t.Errorf("formatDuration(2540) = %q, expected %q", got, "2.5s")
	}
	if got := winnerLabel(0); got != "Draw" {
		t.Errorf("winnerLabel(0) = %q, expected %q", got, "Draw")
	}
}
