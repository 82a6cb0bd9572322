package config

import (
	_ "embed"
)

//go:embed defaults/tron.yaml
var defaultTronYAML []byte

// DefaultTronYAML returns the embedded default configuration file.
func DefaultTronYAML() []byte {
	out := make([]byte, len(defaultTronYAML))
	copy(out, defaultTronYAML)
	return out
}

// DefaultTronConfig returns the default light bike configuration.
func DefaultTronConfig() TronConfig {
	return TronConfig{
		Arena: ArenaConfig{
			Width:      1920,
			Height:     1080,
			Background: "#646464",
		},
		Bike: BikeConfig{
			Width:          50,
			Height:         70,
			Speed:          4,
			TrailSize:      10,
			TurnCooldownMs: 50,
			StartMargin:    100,
		},
		Text: TextConfig{
			TitleScale:  10,
			ChoiceScale: 5,
			Highlight:   "#ff3232",
		},
		Players: []PlayerConfig{
			{Color: "#ff0000", Keys: KeyBinding{North: "w", East: "d", South: "s", West: "a"}},
			{Color: "#00ff00", Keys: KeyBinding{North: "up", East: "right", South: "down", West: "left"}},
			{Color: "#0000ff", Keys: KeyBinding{North: "i", East: "l", South: "k", West: "j"}},
			{Color: "#ffff00", Keys: KeyBinding{North: "t", East: "h", South: "g", West: "f"}},
		},
	}
}
