package tron

import (
	"math"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
)

// segmentRect returns the box covered by the trail segment p1-p2, trail
// units thick. Segments are axis aligned; equal x means vertical.
func segmentRect(p1, p2 anim.Vec2, size float64) anim.Rect {
	if p1.X == p2.X {
		return anim.Rect{
			X: p1.X - size/2,
			Y: math.Min(p1.Y, p2.Y),
			W: size,
			H: math.Abs(p2.Y - p1.Y),
		}
	}
	return anim.Rect{
		X: math.Min(p1.X, p2.X),
		Y: p1.Y - size/2,
		W: math.Abs(p2.X - p1.X),
		H: size,
	}
}

// outOfBounds reports whether r leaves the arena.
func outOfBounds(r anim.Rect, arena config.ArenaConfig) bool {
	return r.X < 0 || r.Y < 0 || r.X+r.W > arena.Width || r.Y+r.H > arena.Height
}

// headOn reports whether a and b face each other and touch.
func headOn(a, b *Bike, bc config.BikeConfig) bool {
	if a.Dir == b.Dir || a.Dir.Perpendicular(b.Dir) {
		return false
	}
	return core.Overlaps(a.Rect(bc), b.Rect(bc))
}

// hitsTrail reports whether a touches any segment of other's trail. A
// bike's own trail ignores the segment it is currently drawing.
func hitsTrail(a, other *Bike, cfg config.TronConfig) bool {
	points := other.Trail
	if a == other {
		points = points[:len(points)-2]
	}

	r := a.Rect(cfg.Bike)
	for k := 0; k+1 < len(points); k++ {
		if core.Overlaps(r, segmentRect(points[k], points[k+1], cfg.Bike.TrailSize)) {
			return true
		}
	}
	return false
}

// crashed reports whether bike a is killed by bike b this frame.
func crashed(a, b *Bike, cfg config.TronConfig) bool {
	if outOfBounds(a.Rect(cfg.Bike), cfg.Arena) {
		return true
	}
	if a != b && headOn(a, b, cfg.Bike) {
		return true
	}
	return hitsTrail(a, b, cfg)
}
