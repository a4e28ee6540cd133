package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ahtohbi4/nature-simulator/camera"
)

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// TerminalCanvas draws onto a tcell screen, one world disc per group of
// cells. Translucent colours are flattened over the background since cells
// have no alpha.
type TerminalCanvas struct {
	screen tcell.Screen
	cam    *camera.Camera
}

// NewTerminalCanvas creates a canvas that fits a world of w×h units into
// the screen.
func NewTerminalCanvas(screen tcell.Screen, w, h float64) *TerminalCanvas {
	cols, rows := screen.Size()
	return &TerminalCanvas{
		screen: screen,
		cam:    camera.NewWithAspect(float64(cols), float64(rows), w, h, CellAspect),
	}
}

// Resize refits the camera after a terminal resize.
func (c *TerminalCanvas) Resize() {
	cols, rows := c.screen.Size()
	c.cam.Resize(float64(cols), float64(rows))
}

func toTcell(col color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))
}

// Clear also picks up terminal resizes.
func (c *TerminalCanvas) Clear() {
	c.Resize()
	c.screen.SetStyle(tcell.StyleDefault.Background(toTcell(Background)))
	c.screen.Clear()
}

func (c *TerminalCanvas) StrokeBorder(w, h float64) {
	x0, y0 := c.cell(0, 0)
	x1, y1 := c.cell(w, h)
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(toTcell(Background))
	for x := x0; x <= x1; x++ {
		c.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		c.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0; y <= y1; y++ {
		c.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		c.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	c.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	c.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	c.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	c.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

// FillCircle paints the background of every cell whose centre lies in the
// disc. Discs smaller than a cell become a single dot.
func (c *TerminalCanvas) FillCircle(x, y, r float64, col color.RGBA) {
	if c.cam.Scale(r) < 1 {
		c.dot(x, y, '●', col)
		return
	}
	c.eachCell(x, y, r, func(cx, cy int) {
		mainc, combc, style, _ := c.screen.GetContent(cx, cy)
		_, bg, _ := style.Decompose()
		under := Background
		if bg != tcell.ColorDefault && bg.Valid() {
			br, bgreen, bb := bg.RGB()
			under = color.RGBA{R: uint8(br), G: uint8(bgreen), B: uint8(bb), A: 255}
		}
		c.screen.SetContent(cx, cy, mainc, combc, style.Background(toTcell(Flatten(col, under))))
	})
}

func (c *TerminalCanvas) StrokeCircle(x, y, r float64, col color.RGBA) {
	c.dot(x, y, '○', col)
}

// Text writes one rune per cell, starting at the cell holding (x, y).
func (c *TerminalCanvas) Text(x, y, _ float64, text string, col color.RGBA) {
	cx, cy := c.cell(x, y)
	for _, r := range text {
		_, _, style, _ := c.screen.GetContent(cx, cy)
		c.screen.SetContent(cx, cy, r, nil, style.Foreground(toTcell(col)))
		cx++
	}
}

func (c *TerminalCanvas) dot(x, y float64, r rune, col color.RGBA) {
	cx, cy := c.cell(x, y)
	_, _, style, _ := c.screen.GetContent(cx, cy)
	c.screen.SetContent(cx, cy, r, nil, style.Foreground(toTcell(col)))
}

func (c *TerminalCanvas) cell(x, y float64) (int, int) {
	sx, sy := c.cam.WorldToScreen(x, y)
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// eachCell visits the cells whose centres fall inside the disc.
func (c *TerminalCanvas) eachCell(x, y, r float64, fn func(cx, cy int)) {
	x0, y0 := c.cell(x-r, y-r)
	x1, y1 := c.cell(x+r, y+r)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			wx, wy := c.cam.ScreenToWorld(float64(cx)+0.5, float64(cy)+0.5)
			if math.Hypot(wx-x, wy-y) <= r {
				fn(cx, cy)
			}
		}
	}
}
