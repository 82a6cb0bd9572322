// Package anim implements keyframe animation tracks and a playback scheduler.
//
// A Track is an immutable sequence of keyframes loaded once from an
// <animation> markup document. A Scheduler binds tracks to drawables and,
// once per frame, interpolates every live playback and draws it through a
// caller-supplied Canvas. The package owns no rendering surface and never
// reads the clock: callers pass the frame time in milliseconds.
package anim

// Vec2 is a 2D vector in logical units.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Keyframe is one timestamped transform sample.
type Keyframe struct {
	Time     int64   // Milliseconds from track start
	Position Vec2    // Offset added to the playback anchor
	Scale    Vec2    // Multiplier of the drawable's native size
	Rotation float64 // Degrees, clockwise, no wraparound
	Alpha    float64 // Opacity, 1 = opaque
}

// DefaultKeyframe returns a keyframe with every field at its default value.
// Attributes missing from a <state> element keep these values.
func DefaultKeyframe() Keyframe {
	return Keyframe{
		Time:     0,
		Position: Vec2{X: 0, Y: 0},
		Scale:    Vec2{X: 1, Y: 1},
		Rotation: 0,
		Alpha:    1,
	}
}

// Transform is the interpolated state of a playback at one instant.
// Position already includes the playback anchor.
type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float64
	Alpha    float64
}

// lerp performs linear interpolation between a and b.
// t is not clamped.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// interpolate blends every field of cur towards next by coeff.
func interpolate(cur, next Keyframe, coeff float64) Transform {
	return Transform{
		Position: Vec2{
			X: lerp(cur.Position.X, next.Position.X, coeff),
			Y: lerp(cur.Position.Y, next.Position.Y, coeff),
		},
		Scale: Vec2{
			X: lerp(cur.Scale.X, next.Scale.X, coeff),
			Y: lerp(cur.Scale.Y, next.Scale.Y, coeff),
		},
		Rotation: lerp(cur.Rotation, next.Rotation, coeff),
		Alpha:    lerp(cur.Alpha, next.Alpha, coeff),
	}
}
