package renderer

import (
	"fmt"
	"image/color"
)

// MarkerRadius is the radius of the dot drawn at an agent's position.
const MarkerRadius = 2.0

// Sprite is everything needed to draw one agent.
type Sprite struct {
	X, Y         float64
	ViewRadius   float64
	ActionRadius float64
	Alive        bool
	Color        color.RGBA
	Label        string
}

// Label formats the caption drawn next to an agent.
func Label(fullName, gender string) string {
	return fmt.Sprintf("%s (%s)", fullName, gender)
}

// DrawSprite draws an agent. Living agents get their action and view radii
// as translucent discs; dead ones keep a hollow marker and their label.
func DrawSprite(c Canvas, s Sprite) {
	if s.Alive {
		c.FillCircle(s.X, s.Y, s.ActionRadius, ActionColor)
		c.FillCircle(s.X, s.Y, s.ViewRadius, ViewColor)
		c.FillCircle(s.X, s.Y, MarkerRadius, s.Color)
	} else {
		c.StrokeCircle(s.X, s.Y, MarkerRadius, s.Color)
	}
	c.Text(s.X+2, s.Y-9, 10, s.Label, s.Color)
}

// Frame describes a whole day.
type Frame struct {
	Width, Height float64
	Day           int
	Sprites       []Sprite
	// Notes are rendered below the world, newest first.
	Notes []string
}

// DrawFrame clears the canvas and draws the border, every sprite, the day
// counter and the notification strip.
func DrawFrame(c Canvas, f Frame) {
	c.Clear()
	c.StrokeBorder(f.Width, f.Height)
	for _, s := range f.Sprites {
		DrawSprite(c, s)
	}
	c.Text(5, 18, 14, fmt.Sprintf("Day %d", f.Day), LabelColor)
	DrawNotifications(c, 5, f.Height, f.Notes)
}
