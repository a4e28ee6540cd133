// Package camera maps a bounded simulation world onto a screen viewport.
package camera

import (
	"math"

	"github.com/paulmach/orb"
)

// Camera controls the viewport into the simulation world.
// Supports pan and zoom; the view is kept over the world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom is screen pixels per world unit horizontally
	Zoom float64

	// PixelAspect is the height/width ratio of one screen pixel. Terminal
	// cells are about twice as tall as wide.
	PixelAspect float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera that fits the whole world into the viewport.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	return NewWithAspect(viewportW, viewportH, worldW, worldH, 1)
}

// NewWithAspect is New for screens with non-square pixels.
func NewWithAspect(viewportW, viewportH, worldW, worldH, pixelAspect float64) *Camera {
	if pixelAspect <= 0 {
		pixelAspect = 1
	}
	c := &Camera{
		PixelAspect: pixelAspect,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		WorldW:      worldW,
		WorldH:      worldH,
	}
	c.MinZoom = c.fitZoom()
	c.MaxZoom = c.MinZoom * 8
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world is visible.
func (c *Camera) fitZoom() float64 {
	return math.Min(c.ViewportW/c.WorldW, c.ViewportH*c.PixelAspect/c.WorldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom/c.PixelAspect
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)*c.PixelAspect/c.Zoom
	return wx, wy
}

// Scale converts a world length to horizontal screen pixels.
func (c *Camera) Scale(length float64) float64 {
	return length * c.Zoom
}

// ScaleY converts a world length to vertical screen pixels.
func (c *Camera) ScaleY(length float64) float64 {
	return length * c.Zoom / c.PixelAspect
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	b := c.VisibleWorldBounds().Pad(radius)
	return b.Contains(orb.Point{wx, wy})
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	ratio := c.Zoom / c.MinZoom
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom()
	c.MaxZoom = c.MinZoom * 8
	c.SetZoom(c.MinZoom * ratio)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy * c.PixelAspect / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomStep is the zoom factor applied per mouse wheel step.
const ZoomStep = 1.1

// Input is one frame of user interaction with the viewport.
type Input struct {
	Wheel        float64 // wheel steps, positive zooms in
	DragX, DragY float64 // pointer movement in screen pixels while dragging
	Reset        bool
}

// Apply updates the camera from one frame of input. Dragging moves the
// world along with the pointer.
func (c *Camera) Apply(in Input) {
	if in.Reset {
		c.Reset()
		return
	}
	if in.Wheel != 0 {
		c.ZoomBy(math.Pow(ZoomStep, in.Wheel))
	}
	if in.DragX != 0 || in.DragY != 0 {
		c.Pan(-in.DragX, -in.DragY)
	}
}

// Reset shows the whole world centered in the viewport.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() orb.Bound {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH * c.PixelAspect / (2 * c.Zoom)
	return orb.Bound{
		Min: orb.Point{c.X - halfW, c.Y - halfH},
		Max: orb.Point{c.X + halfW, c.Y + halfH},
	}
}

// clampCenter keeps the view over the world. An axis that fits entirely
// stays centered.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH * c.PixelAspect / (2 * c.Zoom)
	c.X = clampAxis(c.X, halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH)
}

func clampAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return min(max(center, half), size-half)
}
