package core

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Cell size of the PNG output, matching basicfont.Face7x13.
const (
	pngCellW = 7
	pngCellH = 13
)

// RenderImage draws the screen as an image, one 7×13 glyph per cell.
func RenderImage(s *Screen) *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, s.Width()*pngCellW, s.Height()*pngCellH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	ascent := face.Metrics().Ascent.Ceil()
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			box := image.Rect(x*pngCellW, y*pngCellH, (x+1)*pngCellW, (y+1)*pngCellH)

			if cell.BG != "" {
				bg := ParseHex(cell.BG, colorful.Color{})
				draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)
			}
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}

			fg := cell.Color.RGB()
			if cell.FG != "" {
				fg = ParseHex(cell.FG, fg)
			}
			if cell.Rune == '█' {
				draw.Draw(img, box, image.NewUniform(fg), image.Point{}, draw.Src)
				continue
			}

			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(box.Min.X, box.Min.Y+ascent),
			}
			d.DrawString(string(cell.Rune))
		}
	}
	return img
}

// WritePNG encodes the screen as a PNG image.
func WritePNG(w io.Writer, s *Screen) error {
	return png.Encode(w, RenderImage(s))
}
