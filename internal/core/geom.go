// Package core provides fundamental types and utilities for the light bike
// platform: the screen buffer, input frames, geometry helpers and the
// canvas that maps the game's logical plane onto terminal cells.
// It does not depend on Bubble Tea so game logic stays pure and testable.
package core

import (
	"math"

	"github.com/vovakirdan/lightbike/internal/anim"
)

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Overlaps reports whether two logical rectangles share any point.
// Touching edges count as overlapping and rectangles with zero width or
// height still collide; negative sizes never do.
func Overlaps(a, b anim.Rect) bool {
	if a.W < 0 || a.H < 0 || b.W < 0 || b.H < 0 {
		return false
	}
	if math.Max(a.X, b.X) > math.Min(a.X+a.W, b.X+b.W) {
		return false
	}
	if math.Max(a.Y, b.Y) > math.Min(a.Y+a.H, b.Y+b.H) {
		return false
	}
	return true
}

// CenteredRect returns the rectangle of size w×h centred on p.
func CenteredRect(p anim.Vec2, w, h float64) anim.Rect {
	return anim.Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

// Finite reports whether every field of r is a finite number.
func Finite(r anim.Rect) bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sineUnit maps sin(t) from [-1,1] to [0,1].
func sineUnit(t float64) float64 {
	return math.Sin(t)*0.5 + 0.5
}
