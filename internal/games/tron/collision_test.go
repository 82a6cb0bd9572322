package tron

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/config"
)

func TestSegmentRect(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 anim.Vec2
		want   anim.Rect
	}{
		{"vertical down", anim.Vec2{X: 100, Y: 100}, anim.Vec2{X: 100, Y: 300}, anim.Rect{X: 95, Y: 100, W: 10, H: 200}},
		{"vertical up", anim.Vec2{X: 100, Y: 300}, anim.Vec2{X: 100, Y: 100}, anim.Rect{X: 95, Y: 100, W: 10, H: 200}},
		{"horizontal", anim.Vec2{X: 300, Y: 50}, anim.Vec2{X: 100, Y: 50}, anim.Rect{X: 100, Y: 45, W: 200, H: 10}},
		{"point", anim.Vec2{X: 100, Y: 100}, anim.Vec2{X: 100, Y: 100}, anim.Rect{X: 95, Y: 100, W: 10, H: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentRect(tt.p1, tt.p2, 10); got != tt.want {
				t.Errorf("segmentRect() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	arena := config.DefaultTronConfig().Arena

	tests := []struct {
		name string
		r    anim.Rect
		want bool
	}{
		{"inside", anim.Rect{X: 10, Y: 10, W: 50, H: 70}, false},
		{"touching right edge", anim.Rect{X: 1870, Y: 10, W: 50, H: 70}, false},
		{"past right edge", anim.Rect{X: 1871, Y: 10, W: 50, H: 70}, true},
		{"past bottom", anim.Rect{X: 10, Y: 1011, W: 50, H: 70}, true},
		{"negative x", anim.Rect{X: -0.5, Y: 10, W: 50, H: 70}, true},
		{"negative y", anim.Rect{X: 10, Y: -1, W: 50, H: 70}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outOfBounds(tt.r, arena); got != tt.want {
				t.Errorf("outOfBounds(%+v) = %v, expected %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestHeadOn(t *testing.T) {
	bc := config.DefaultTronConfig().Bike

	tests := []struct {
		name   string
		a, b   Direction
		bx     float64
		wantOn bool
	}{
		{"facing and touching", East, West, 170, true},
		{"facing apart", East, West, 171, false},
		{"same heading", East, East, 150, false},
		{"perpendicular", East, North, 150, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBike(anim.Vec2{X: 100, Y: 100}, tt.a, colorful.Color{})
			b := newBike(anim.Vec2{X: tt.bx, Y: 100}, tt.b, colorful.Color{})
			if got := headOn(a, b, bc); got != tt.wantOn {
				t.Errorf("headOn() = %v, expected %v", got, tt.wantOn)
			}
		})
	}
}

func TestHitsTrail(t *testing.T) {
	cfg := config.DefaultTronConfig()

	// A bike that turned twice; its first segment runs under its nose.
	b := newBike(anim.Vec2{X: 90, Y: 120}, East, colorful.Color{})
	b.Trail = []anim.Vec2{{X: 40, Y: 100}, {X: 60, Y: 100}, {X: 60, Y: 120}, {X: 90, Y: 120}}

	if !hitsTrail(b, b, cfg) {
		t.Error("bike did not hit its own old segment")
	}

	fresh := newBike(anim.Vec2{X: 500, Y: 500}, South, colorful.Color{})
	fresh.move(40)
	if hitsTrail(fresh, fresh, cfg) {
		t.Error("bike hit the segment it is drawing")
	}

	other := newBike(anim.Vec2{X: 90, Y: 120}, East, colorful.Color{})
	if !hitsTrail(other, b, cfg) {
		t.Error("bike did not hit another bike's trail")
	}
	if hitsTrail(other, fresh, cfg) {
		t.Error("bike hit a trail on the other side of the arena")
	}
}

func TestCrashed(t *testing.T) {
	cfg := config.DefaultTronConfig()

	a := newBike(anim.Vec2{X: 500, Y: 500}, East, colorful.Color{})
	if crashed(a, a, cfg) {
		t.Error("idle bike crashed into itself")
	}

	wall := newBike(anim.Vec2{X: 1900, Y: 500}, East, colorful.Color{})
	if !crashed(wall, a, cfg) {
		t.Error("bike past the wall did not crash")
	}

	// b drove south through x=530 and a's nose is on its trail.
	b := newBike(anim.Vec2{X: 530, Y: 300}, South, colorful.Color{})
	b.move(400)
	if !crashed(a, b, cfg) {
		t.Error("bike on another trail did not crash")
	}
	if crashed(b, a, cfg) {
		t.Error("crash was not one sided")
	}
}
