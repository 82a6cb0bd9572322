package core

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for UI elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// paletteRGB approximates the terminal palette, for image output.
var paletteRGB = map[Color]colorful.Color{
	ColorDefault: {R: 0.9, G: 0.9, B: 0.9},
	ColorRed:     {R: 0.8, G: 0.1, B: 0.1},
	ColorGreen:   {R: 0.1, G: 0.7, B: 0.1},
	ColorYellow:  {R: 0.8, G: 0.8, B: 0.1},
	ColorBlue:    {R: 0.2, G: 0.3, B: 0.9},
	ColorMagenta: {R: 0.7, G: 0.2, B: 0.7},
	ColorCyan:    {R: 0.1, G: 0.7, B: 0.7},
	ColorWhite:   {R: 1, G: 1, B: 1},
	ColorGray:    {R: 0.55, G: 0.55, B: 0.55},
}

// RGB returns the approximate true colour of a palette entry.
func (c Color) RGB() colorful.Color {
	if rgb, ok := paletteRGB[c]; ok {
		return rgb
	}
	return paletteRGB[ColorDefault]
}

// ParseHex parses a "#rrggbb" colour. Invalid input yields fallback.
func ParseHex(s string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Fade blends fg over bg with the given opacity and returns the result
// as "#rrggbb". Opacity is clamped to [0,1].
func Fade(bg, fg colorful.Color, opacity float64) string {
	return bg.BlendRgb(fg, ClampF(opacity, 0, 1)).Clamped().Hex()
}

// Cycle returns the slowly rotating rainbow colour used for titles.
// Each channel follows a sine wave of the time in milliseconds,
// phase shifted by 2 radians per channel.
func Cycle(ms int64) colorful.Color {
	t := float64(ms) * 0.001
	return colorful.Color{
		R: sineUnit(t),
		G: sineUnit(t + 2),
		B: sineUnit(t + 4),
	}
}
