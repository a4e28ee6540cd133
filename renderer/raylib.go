package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ahtohbi4/nature-simulator/camera"
)

// RaylibCanvas draws into the current raylib frame. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing.
type RaylibCanvas struct {
	cam *camera.Camera
}

// NewRaylibCanvas creates a canvas mapping world units through cam.
func NewRaylibCanvas(cam *camera.Camera) *RaylibCanvas {
	return &RaylibCanvas{cam: cam}
}

func toRL(col color.RGBA) rl.Color {
	return rl.Color{R: col.R, G: col.G, B: col.B, A: col.A}
}

func (c *RaylibCanvas) Clear() {
	rl.ClearBackground(toRL(Background))
}

func (c *RaylibCanvas) StrokeBorder(w, h float64) {
	x0, y0 := c.cam.WorldToScreen(0, 0)
	x1, y1 := c.cam.WorldToScreen(w, h)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.Black)
}

// FillCircle skips discs outside the zoomed viewport.
func (c *RaylibCanvas) FillCircle(x, y, r float64, col color.RGBA) {
	if !c.cam.IsVisible(x, y, r) {
		return
	}
	sx, sy := c.cam.WorldToScreen(x, y)
	rl.DrawCircleV(rl.Vector2{X: float32(sx), Y: float32(sy)}, float32(c.cam.Scale(r)), toRL(col))
}

func (c *RaylibCanvas) StrokeCircle(x, y, r float64, col color.RGBA) {
	if !c.cam.IsVisible(x, y, r) {
		return
	}
	sx, sy := c.cam.WorldToScreen(x, y)
	rl.DrawCircleLines(int32(sx), int32(sy), float32(c.cam.Scale(r)), toRL(col))
}

// Text draws with the baseline at y, like a 2D canvas context.
func (c *RaylibCanvas) Text(x, y, size float64, text string, col color.RGBA) {
	sx, sy := c.cam.WorldToScreen(x, y)
	px := c.cam.Scale(size)
	rl.DrawText(text, int32(sx), int32(sy-px), int32(px), toRL(col))
}
