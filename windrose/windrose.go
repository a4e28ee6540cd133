// Package windrose models an 8-sector compass used to pick and validate
// movement directions.
//
// Angles follow the screen convention: East is 0°, and angles grow clockwise
// through South (90°) because the y axis points down. North is -90°.
package windrose

import (
	"math"

	"github.com/ahtohbi4/nature-simulator/random"
)

// Sector names.
const (
	N  = "n"
	NE = "ne"
	E  = "e"
	SE = "se"
	S  = "s"
	SW = "sw"
	W  = "w"
	NW = "nw"
)

// degreeTolerance absorbs radian/degree round trips at sector edges.
const degreeTolerance = 1e-9

// Sector is either a single angle or a closed angular range, in degrees.
type Sector struct {
	Name  string
	Label string
	Min   float64
	Max   float64
}

// Ranged reports whether the sector spans an angular range.
func (s Sector) Ranged() bool {
	return s.Min != s.Max
}

// contains reports whether deg (already wrapped) lies in the sector.
func (s Sector) contains(deg float64) bool {
	if s.Ranged() {
		return deg >= s.Min-degreeTolerance && deg <= s.Max+degreeTolerance
	}
	return math.Abs(deg-s.Min) <= degreeTolerance
}

// compass lists all sectors in clockwise order starting from North.
var compass = [...]Sector{
	{Name: N, Label: "North", Min: -90, Max: -90},
	{Name: NE, Label: "North-East", Min: -90, Max: 0},
	{Name: E, Label: "East", Min: 0, Max: 0},
	{Name: SE, Label: "South-East", Min: 0, Max: 90},
	{Name: S, Label: "South", Min: 90, Max: 90},
	{Name: SW, Label: "South-West", Min: 90, Max: 180},
	{Name: W, Label: "West", Min: 180, Max: 180},
	{Name: NW, Label: "North-West", Min: -180, Max: -90},
}

// Rose is a set of available compass sectors. The zero value is not usable;
// call New.
type Rose struct {
	available [len(compass)]bool
	modified  bool
}

// New returns a rose with all 8 sectors available.
func New() *Rose {
	r := &Rose{}
	for i := range r.available {
		r.available[i] = true
	}
	return r
}

// Subtract removes the named sectors. Unknown and already removed names are
// ignored. The rose is marked modified on the first call.
func (r *Rose) Subtract(names ...string) {
	for _, name := range names {
		for i, s := range compass {
			if s.Name == name {
				r.available[i] = false
			}
		}
	}
	r.modified = true
}

// IsModified reports whether Subtract has been called.
func (r *Rose) IsModified() bool {
	return r.modified
}

// Sectors returns the remaining sectors in compass order.
func (r *Rose) Sectors() []Sector {
	out := make([]Sector, 0, len(compass))
	for i, s := range compass {
		if r.available[i] {
			out = append(out, s)
		}
	}
	return out
}

// Names returns the names of the remaining sectors in compass order.
func (r *Rose) Names() []string {
	sectors := r.Sectors()
	names := make([]string, len(sectors))
	for i, s := range sectors {
		names[i] = s.Name
	}
	return names
}

// RandomDirection returns a direction in radians drawn from the remaining
// sectors. Ranged sectors are preferred: one is chosen uniformly and an angle
// is sampled uniformly inside it. Without ranged sectors a single-angle sector
// is chosen. ok is false when no sector remains.
func (r *Rose) RandomDirection(src random.Source) (rad float64, ok bool) {
	sectors := r.Sectors()
	if len(sectors) == 0 {
		return 0, false
	}

	ranged := sectors[:0:0]
	for _, s := range sectors {
		if s.Ranged() {
			ranged = append(ranged, s)
		}
	}

	if len(ranged) > 0 {
		s := random.Choice(src, ranged)
		return ToRadians(src.Float(s.Min, s.Max)), true
	}

	s := random.Choice(src, sectors)
	return ToRadians(s.Min), true
}

// CheckDirection reports whether the angle, in radians, points into one of
// the remaining sectors.
func (r *Rose) CheckDirection(rad float64) bool {
	deg := ToDegrees(rad)
	for i, s := range compass {
		if !r.available[i] {
			continue
		}
		// -180 and 180 name the same heading, so test the wrapped forms too.
		if s.contains(deg) || s.contains(deg+360) || s.contains(deg-360) {
			return true
		}
	}
	return false
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
