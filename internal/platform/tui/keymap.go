package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
)

// steerActions are the actions for north, east, south and west.
var steerActions = [4]core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}

var headings = [4]string{"north", "east", "south", "west"}

// KeyMap translates Bubble Tea key messages to game actions.
// Menu keys land on core.PlayerShared, steering keys on each seat.
type KeyMap struct {
	Quit       key.Binding
	Screenshot key.Binding
	Pause      key.Binding
	MenuUp     key.Binding
	MenuDown   key.Binding
	Confirm    key.Binding

	// Seats holds the north, east, south, west bindings of each player.
	Seats [config.MaxPlayers][4]key.Binding
}

// NewKeyMap builds the bindings from the game configuration.
func NewKeyMap(cfg config.TronConfig) KeyMap {
	km := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "menu up"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "menu down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
	}

	for i, p := range cfg.Players {
		if i >= config.MaxPlayers {
			break
		}
		keys := p.Keys.List()
		for d, k := range keys {
			km.Seats[i][d] = key.NewBinding(
				key.WithKeys(k),
				key.WithHelp(k, fmt.Sprintf("player %d %s", i+1, headings[d])),
			)
		}
	}
	return km
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MenuUp, k.MenuDown, k.Confirm, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view, one column per
// player after the global keys.
func (k KeyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{{k.MenuUp, k.MenuDown, k.Confirm, k.Pause, k.Screenshot, k.Quit}}
	for _, seat := range k.Seats {
		groups = append(groups, seat[:])
	}
	return groups
}

// SeatKeys describes the steering keys of one player, e.g. "w/d/s/a".
func (k KeyMap) SeatKeys(i int) string {
	keys := make([]string, 0, 4)
	for _, b := range k.Seats[i] {
		keys = append(keys, b.Help().Key)
	}
	return strings.Join(keys, "/")
}

// Map adds the actions for msg to frame.
// Returns true if the key was a quit request.
func (k KeyMap) Map(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	if key.Matches(msg, k.Quit) {
		return true
	}

	switch {
	case key.Matches(msg, k.MenuUp):
		frame.Add(core.PlayerShared, core.ActionUp)
	case key.Matches(msg, k.MenuDown):
		frame.Add(core.PlayerShared, core.ActionDown)
	case key.Matches(msg, k.Confirm):
		frame.Add(core.PlayerShared, core.ActionConfirm)
	case key.Matches(msg, k.Pause):
		frame.Add(core.PlayerShared, core.ActionPause)
	}

	for i, seat := range k.Seats {
		for d, b := range seat {
			if key.Matches(msg, b) {
				frame.Add(core.PlayerFromIndex(i), steerActions[d])
			}
		}
	}
	return false
}
