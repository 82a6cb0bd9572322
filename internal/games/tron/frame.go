package tron

import (
	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/core"
)

// drawCall is one recorded anim.Canvas call.
type drawCall struct {
	d       anim.Drawable
	dst     anim.Rect
	angle   float64
	opacity float64
}

// displayList records the draw calls of a scheduler pass made during Step
// so Render can replay them onto whatever screen it is handed.
type displayList struct {
	calls []drawCall
}

// DrawRotated implements anim.Canvas.
func (l *displayList) DrawRotated(d anim.Drawable, dst anim.Rect, angle float64) {
	opacity := 1.0
	if s, ok := d.(*core.Sprite); ok {
		opacity = s.Opacity()
	}
	l.calls = append(l.calls, drawCall{d: d, dst: dst, angle: angle, opacity: opacity})
}

func (l *displayList) reset() {
	l.calls = l.calls[:0]
}

// replay issues the recorded calls on c in order.
func (l *displayList) replay(c anim.Canvas) {
	for _, call := range l.calls {
		call.d.SetOpacity(call.opacity)
		c.DrawRotated(call.d, call.dst, call.angle)
	}
}

// texts returns the text of every recorded sprite, in draw order.
func (l *displayList) texts() []string {
	var out []string
	for _, call := range l.calls {
		if s, ok := call.d.(*core.Sprite); ok {
			out = append(out, s.Text())
		}
	}
	return out
}
