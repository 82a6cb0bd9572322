package tron

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/lightbike/internal/anim"
	"github.com/vovakirdan/lightbike/internal/config"
	"github.com/vovakirdan/lightbike/internal/core"
)

// Direction is a heading on the arena. Y grows downwards.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Vertical reports whether d is north or south.
func (d Direction) Vertical() bool {
	return d%2 == 0
}

// Perpendicular reports whether turning from d to o is a quarter turn.
func (d Direction) Perpendicular(o Direction) bool {
	return d.Vertical() != o.Vertical()
}

func (d Direction) delta() anim.Vec2 {
	switch d {
	case North:
		return anim.Vec2{Y: -1}
	case East:
		return anim.Vec2{X: 1}
	case South:
		return anim.Vec2{Y: 1}
	default:
		return anim.Vec2{X: -1}
	}
}

// directionFor maps a steering action to a heading.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return North, true
	case core.ActionRight:
		return East, true
	case core.ActionDown:
		return South, true
	case core.ActionLeft:
		return West, true
	}
	return 0, false
}

// Bike is one light cycle and the trail it leaves.
type Bike struct {
	Pos   anim.Vec2
	Dir   Direction
	Color colorful.Color
	Dead  bool

	// Trail holds the turn points followed by the current head position.
	// It always has at least two points.
	Trail []anim.Vec2

	lastTurn int64
	turned   bool
}

// newBike places a bike at pos. The trail starts as a zero length segment.
func newBike(pos anim.Vec2, dir Direction, col colorful.Color) *Bike {
	return &Bike{
		Pos:   pos,
		Dir:   dir,
		Color: col,
		Trail: []anim.Vec2{pos, pos},
	}
}

// spawnBikes creates the four bikes in their corners: the top ones head
// south, the bottom ones north.
func spawnBikes(cfg config.TronConfig) []*Bike {
	m := cfg.Bike.StartMargin
	w, h := cfg.Arena.Width, cfg.Arena.Height
	spots := [config.MaxPlayers]struct {
		pos anim.Vec2
		dir Direction
	}{
		{anim.Vec2{X: m, Y: m}, South},
		{anim.Vec2{X: w - m, Y: m}, South},
		{anim.Vec2{X: m, Y: h - m}, North},
		{anim.Vec2{X: w - m, Y: h - m}, North},
	}

	bikes := make([]*Bike, config.MaxPlayers)
	for i, s := range spots {
		col := core.ParseHex(cfg.Players[i].Color, core.ColorWhite.RGB())
		bikes[i] = newBike(s.pos, s.dir, col)
	}
	return bikes
}

// move advances the head by dist along the current heading.
func (b *Bike) move(dist float64) {
	d := b.Dir.delta()
	b.Pos.X += d.X * dist
	b.Pos.Y += d.Y * dist
	b.Trail[len(b.Trail)-1] = b.Pos
}

// turn steers the bike if dir is a quarter turn and the cooldown since
// the last accepted turn has expired. The current position becomes a trail
// corner, then the bike is nudged a quarter of its size in the new
// direction so it clears its own fresh segment.
func (b *Bike) turn(dir Direction, now int64, bc config.BikeConfig) bool {
	if b.Dead || !b.Dir.Perpendicular(dir) {
		return false
	}
	if b.turned && now-b.lastTurn <= bc.TurnCooldownMs {
		return false
	}

	b.Trail = append(b.Trail, b.Pos)
	b.Dir = dir
	b.lastTurn = now
	b.turned = true

	if dir.Vertical() {
		b.move(bc.Height / 4)
	} else {
		b.move(bc.Width / 4)
	}
	return true
}

// Rect returns the bike's bounding box, long side along the heading.
func (b *Bike) Rect(bc config.BikeConfig) anim.Rect {
	if b.Dir.Vertical() {
		return core.CenteredRect(b.Pos, bc.Width, bc.Height)
	}
	return core.CenteredRect(b.Pos, bc.Height, bc.Width)
}
