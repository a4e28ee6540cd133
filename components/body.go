package components

// Senses holds perception and interaction distances.
type Senses struct {
	ViewRadius   float64 // distance at which others are noticed
	ActionRadius float64 // distance at which mating happens
}
