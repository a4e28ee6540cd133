package components

// Position is an agent's location in world units.
type Position struct {
	X, Y float64
}

// Motion holds heading and speed. Directed is false until the first heading
// is chosen.
type Motion struct {
	Direction float64 // radians, East = 0, clockwise
	Directed  bool
	Speed     float64 // world units per day
}
