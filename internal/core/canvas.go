package core

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"

	"github.com/vovakirdan/lightbike/internal/anim"
)

// CellAspect is the number of canvas pixels stacked in one terminal cell.
// Terminal cells are about twice as tall as they are wide.
const CellAspect = 2

// Canvas maps a fixed logical plane onto a Screen, scaled uniformly and
// letterboxed. One cell is one pixel wide and CellAspect pixels tall.
// Canvas implements anim.Canvas.
type Canvas struct {
	dst        *Screen
	logical    anim.Vec2
	scale      float64 // Pixels per logical unit
	offX, offY float64 // Pixel offset of the logical origin
	area       Rect    // Cells covered by the logical plane
	background colorful.Color
}

// NewCanvas creates a canvas for a logical plane of w×h units on dst.
func NewCanvas(dst *Screen, w, h float64) *Canvas {
	c := &Canvas{
		dst:        dst,
		logical:    anim.Vec2{X: w, Y: h},
		background: colorful.Color{},
	}
	c.layout()
	return c
}

func (c *Canvas) layout() {
	pw := float64(c.dst.Width())
	ph := float64(c.dst.Height() * CellAspect)
	if c.logical.X <= 0 || c.logical.Y <= 0 {
		return
	}

	c.scale = math.Min(pw/c.logical.X, ph/c.logical.Y)
	c.offX = (pw - c.logical.X*c.scale) / 2
	c.offY = (ph - c.logical.Y*c.scale) / 2

	x0 := int(math.Floor(c.offX))
	y0 := int(math.Floor(c.offY / CellAspect))
	x1 := int(math.Ceil(c.offX + c.logical.X*c.scale))
	y1 := int(math.Ceil((c.offY + c.logical.Y*c.scale) / CellAspect))
	c.area = NewRect(x0, y0, x1-x0, y1-y0)
}

// Scale returns the number of pixels per logical unit.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// Area returns the screen cells covered by the logical plane.
func (c *Canvas) Area() Rect {
	return c.area
}

// SetBackground sets the colour used by Clear and for fading sprites.
func (c *Canvas) SetBackground(bg colorful.Color) {
	c.background = bg
}

// Clear paints the logical plane with the background colour.
// Cells outside it are left alone.
func (c *Canvas) Clear() {
	bg := c.background.Hex()
	for y := c.area.Y; y < c.area.Bottom(); y++ {
		for x := c.area.X; x < c.area.Right(); x++ {
			c.dst.SetCell(x, y, Cell{Rune: ' ', BG: bg})
		}
	}
}

// ToCell returns the cell containing the logical point (x, y).
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return int(math.Floor(px)), int(math.Floor(py / CellAspect))
}

func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return c.offX + x*c.scale, c.offY + y*c.scale
}

func (c *Canvas) visible(col, row int) bool {
	return col >= c.area.X && col < c.area.Right() && row >= c.area.Y && row < c.area.Bottom()
}

// FillRect fills every cell the logical rectangle touches. A rectangle
// thinner than a cell still covers one cell. Non-finite rectangles are
// skipped.
func (c *Canvas) FillRect(r anim.Rect, fill rune, col colorful.Color) {
	if !Finite(r) {
		return
	}
	if r.W < 0 {
		r.X, r.W = r.X+r.W, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = r.Y+r.H, -r.H
	}

	px0, py0 := c.toPixel(r.X, r.Y)
	px1, py1 := c.toPixel(r.X+r.W, r.Y+r.H)

	// Only cells of the area are visited.
	ax0, ax1 := float64(c.area.X-1), float64(c.area.Right()+1)
	ay0, ay1 := float64(c.area.Y-1), float64(c.area.Bottom()+1)
	x0, x1 := cellSpan(ClampF(px0, ax0, ax1), ClampF(px1, ax0, ax1))
	y0, y1 := cellSpan(ClampF(py0/CellAspect, ay0, ay1), ClampF(py1/CellAspect, ay0, ay1))
	x0, x1 = max(x0, c.area.X), min(x1, c.area.Right())
	y0, y1 = max(y0, c.area.Y), min(y1, c.area.Bottom())

	fg := col.Clamped().Hex()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cell := c.dst.GetCell(x, y)
			c.dst.SetCell(x, y, Cell{Rune: fill, FG: fg, BG: cell.BG})
		}
	}
}

// cellSpan returns the half-open cell range touched by [a, b].
func cellSpan(a, b float64) (int, int) {
	lo := int(math.Floor(a))
	hi := int(math.Ceil(b))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// DrawRotated draws d stretched into dst and rotated by angle degrees
// clockwise about the centre of dst.
//
// Sprites are drawn one character per glyph: each character lands on the
// cell under its glyph's centre, so scaling spreads the text out and
// rotation swings it around. Other drawables fill their unrotated box.
func (c *Canvas) DrawRotated(d anim.Drawable, dst anim.Rect, angle float64) {
	if !Finite(dst) || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return
	}

	s, ok := d.(*Sprite)
	if !ok {
		c.FillRect(dst, '█', colorful.Color{R: 1, G: 1, B: 1})
		return
	}
	if s.opacity <= 0 || len(s.text) == 0 {
		return
	}

	m := c.glyphTransform(dst, angle)
	step := dst.W / float64(len(s.text))
	for i, r := range s.text {
		if r == ' ' {
			continue
		}
		u := (float64(i)+0.5)*step - dst.W/2
		px, py := apply(m, u, 0)
		col := int(math.Floor(px))
		row := int(math.Floor(py / CellAspect))
		if !c.visible(col, row) {
			continue
		}

		under := c.dst.GetCell(col, row)
		bg := ParseHex(under.BG, c.background)
		c.dst.SetCell(col, row, Cell{
			Rune: r,
			FG:   Fade(bg, s.tint, s.opacity),
			BG:   under.BG,
		})
	}
}

// glyphTransform maps coordinates relative to the centre of dst, in
// logical units, to canvas pixels after rotating them clockwise.
func (c *Canvas) glyphTransform(dst anim.Rect, angle float64) f64.Aff3 {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	center := dst.Center()
	k := c.scale
	return f64.Aff3{
		k * cos, -k * sin, c.offX + k*center.X,
		k * sin, k * cos, c.offY + k*center.Y,
	}
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}
