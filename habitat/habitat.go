// Package habitat defines the rectangular area an agent lives in.
package habitat

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrInvalidBounds is returned when a habitat rectangle is empty or inverted.
var ErrInvalidBounds = errors.New("habitat: invalid bounds")

// Wall identifies one side of the habitat.
type Wall uint8

const (
	WallTop Wall = iota
	WallRight
	WallBottom
	WallLeft
)

// String returns the wall name.
func (w Wall) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallRight:
		return "right"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Habitat is an immutable axis-aligned rectangle.
type Habitat struct {
	name  string
	bound orb.Bound
}

// New creates a habitat spanning (x0,y0)-(x1,y1). Requires x0 < x1 and y0 < y1.
func New(name string, x0, y0, x1, y1 float64) (Habitat, error) {
	if !(x0 < x1) || !(y0 < y1) {
		return Habitat{}, fmt.Errorf("%w: (%g,%g)-(%g,%g)", ErrInvalidBounds, x0, y0, x1, y1)
	}
	return Habitat{
		name:  name,
		bound: orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}},
	}, nil
}

// MustNew is like New but panics on invalid bounds.
func MustNew(name string, x0, y0, x1, y1 float64) Habitat {
	h, err := New(name, x0, y0, x1, y1)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Habitat) Name() string { return h.name }
func (h Habitat) X0() float64  { return h.bound.Min.X() }
func (h Habitat) Y0() float64  { return h.bound.Min.Y() }
func (h Habitat) X1() float64  { return h.bound.Max.X() }
func (h Habitat) Y1() float64  { return h.bound.Max.Y() }

// Width returns x1 - x0.
func (h Habitat) Width() float64 { return h.X1() - h.X0() }

// Height returns y1 - y0.
func (h Habitat) Height() float64 { return h.Y1() - h.Y0() }

// Bound returns the habitat as an orb bound.
func (h Habitat) Bound() orb.Bound { return h.bound }

// Contains reports whether (x, y) lies inside the habitat, edges included.
func (h Habitat) Contains(x, y float64) bool {
	return h.bound.Contains(orb.Point{x, y})
}

// NearWalls returns the walls within reach of a circle of the given radius
// centred at (x, y). Touching counts as near.
func (h Habitat) NearWalls(x, y, radius float64) []Wall {
	var walls []Wall
	if y-radius <= h.Y0() {
		walls = append(walls, WallTop)
	}
	if x+radius >= h.X1() {
		walls = append(walls, WallRight)
	}
	if y+radius >= h.Y1() {
		walls = append(walls, WallBottom)
	}
	if x-radius <= h.X0() {
		walls = append(walls, WallLeft)
	}
	return walls
}
