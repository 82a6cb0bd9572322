package anim

// Drawable is a visual resource borrowed by a playback, such as a text sprite.
type Drawable interface {
	// Size returns the native size in logical units.
	Size() (w, h float64)

	// SetOpacity sets the multiplicative opacity used by subsequent draws.
	SetOpacity(alpha float64)
}

// Canvas is the drawing context supplied by the caller for one frame.
type Canvas interface {
	// DrawRotated draws d stretched into dst, rotated by angle degrees
	// clockwise about the center of dst.
	DrawRotated(d Drawable, dst Rect, angle float64)
}
