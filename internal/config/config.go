// Package config provides YAML-based configuration loading for the
// light bike game.
package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxPlayers is the number of seats the game supports.
const MaxPlayers = 4

// TronConfig contains all configuration for the light bike game.
type TronConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Bike       BikeConfig       `yaml:"bike"`
	Text       TextConfig       `yaml:"text"`
	Players    []PlayerConfig   `yaml:"players"`
	Animations AnimationsConfig `yaml:"animations"`
}

// ArenaConfig defines the logical playing field.
type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
}

// BikeConfig defines bike geometry and movement, in logical units.
type BikeConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"` // Length along the direction of travel
	Speed          float64 `yaml:"speed"`  // Units per tick
	TrailSize      float64 `yaml:"trail_size"`
	TurnCooldownMs int64   `yaml:"turn_cooldown_ms"`
	StartMargin    float64 `yaml:"start_margin"` // Distance of the start points from the walls
}

// TextConfig defines menu text sizes and colours.
type TextConfig struct {
	TitleScale  float64 `yaml:"title_scale"`
	ChoiceScale float64 `yaml:"choice_scale"`
	Highlight   string  `yaml:"highlight"`
}

// PlayerConfig defines one seat.
type PlayerConfig struct {
	Color string     `yaml:"color"`
	Keys  KeyBinding `yaml:"keys"`
}

// KeyBinding holds the steering keys of one seat.
type KeyBinding struct {
	North string `yaml:"north"`
	East  string `yaml:"east"`
	South string `yaml:"south"`
	West  string `yaml:"west"`
}

// List returns the keys in north, east, south, west order.
func (k KeyBinding) List() [4]string {
	return [4]string{k.North, k.East, k.South, k.West}
}

// AnimationsConfig holds optional track file paths. Empty means built in.
type AnimationsConfig struct {
	Death string `yaml:"death"`
	Start string `yaml:"start"`
}

// reservedKeys are handled by the terminal front end and cannot steer.
var reservedKeys = map[string]bool{
	"q":      true,
	"ctrl+c": true,
	"ctrl+s": true,
	"enter":  true,
	"esc":    true,
}

// Validate checks the configuration for values the game cannot run with.
func (c TronConfig) Validate() error {
	var errs []error

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size %vx%v must be positive", c.Arena.Width, c.Arena.Height))
	}
	if c.Bike.Width <= 0 || c.Bike.Height <= 0 {
		errs = append(errs, fmt.Errorf("bike size %vx%v must be positive", c.Bike.Width, c.Bike.Height))
	}
	if c.Bike.Speed <= 0 {
		errs = append(errs, fmt.Errorf("bike speed %v must be positive", c.Bike.Speed))
	}
	if c.Bike.TurnCooldownMs < 0 {
		errs = append(errs, fmt.Errorf("turn cooldown %d must not be negative", c.Bike.TurnCooldownMs))
	}
	if len(c.Players) != MaxPlayers {
		errs = append(errs, fmt.Errorf("need %d players, got %d", MaxPlayers, len(c.Players)))
	}

	seen := make(map[string]int)
	for i, p := range c.Players {
		if _, err := colorful.Hex(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("player %d color %q: %w", i+1, p.Color, err))
		}
		for _, k := range p.Keys.List() {
			if k == "" {
				errs = append(errs, fmt.Errorf("player %d has an unbound direction", i+1))
				continue
			}
			if reservedKeys[k] {
				errs = append(errs, fmt.Errorf("player %d: key %q is reserved", i+1, k))
				continue
			}
			if other, dup := seen[k]; dup {
				errs = append(errs, fmt.Errorf("key %q bound to players %d and %d", k, other, i+1))
				continue
			}
			seen[k] = i + 1
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tron config: %w", err)
	}
	return nil
}
