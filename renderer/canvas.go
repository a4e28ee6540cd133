// Package renderer draws the simulation onto a Canvas.
//
// A Canvas is an immediate-mode 2D surface in world units. The raylib window
// and the tcell terminal are the two real implementations; Recorder keeps the
// calls for inspection.
package renderer

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is the drawing surface one simulation day is rendered onto.
type Canvas interface {
	Clear()
	StrokeBorder(w, h float64)
	FillCircle(x, y, r float64, c color.RGBA)
	StrokeCircle(x, y, r float64, c color.RGBA)
	Text(x, y, size float64, text string, c color.RGBA)
}

// Colours shared by every backend.
var (
	ActionColor = color.RGBA{R: 139, G: 195, B: 74, A: 178} // rgba(139,195,74,.7)
	ViewColor   = color.RGBA{R: 139, G: 195, B: 74, A: 51}  // rgba(139,195,74,.2)
	LabelColor  = color.RGBA{R: 0x33, G: 0x44, B: 0x55, A: 255}
	Background  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ParseColor converts a "#rrggbb" string into an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Flatten blends a translucent colour over bg and returns the opaque
// result. Backends without alpha blending use it.
func Flatten(c, bg color.RGBA) color.RGBA {
	if c.A == 255 {
		return c
	}
	alpha := float64(c.A) / 255
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	back := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	r, g, b := back.BlendRgb(fg, alpha).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
