package core

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GlyphSize is the logical width and height of one sprite character.
const GlyphSize = 8

// Sprite is a one-line text image. Its native size is GlyphSize logical
// units per character by GlyphSize high, and it is drawn through a Canvas.
// A Sprite is not safe for concurrent use.
type Sprite struct {
	text    []rune
	tint    colorful.Color
	opacity float64
}

// NewSprite creates an opaque sprite for text in the given colour.
func NewSprite(text string, tint colorful.Color) *Sprite {
	return &Sprite{
		text:    []rune(text),
		tint:    tint,
		opacity: 1,
	}
}

// Text returns the sprite's text.
func (s *Sprite) Text() string {
	return string(s.text)
}

// Size returns the native size in logical units.
func (s *Sprite) Size() (w, h float64) {
	return float64(GlyphSize * len(s.text)), GlyphSize
}

// SetOpacity sets the opacity used by subsequent draws.
func (s *Sprite) SetOpacity(alpha float64) {
	s.opacity = alpha
}

// Opacity returns the current opacity.
func (s *Sprite) Opacity() float64 {
	return s.opacity
}

// SetTint changes the text colour.
func (s *Sprite) SetTint(c colorful.Color) {
	s.tint = c
}

// Tint returns the text colour.
func (s *Sprite) Tint() colorful.Color {
	return s.tint
}
