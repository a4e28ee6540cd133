// Package species describes agent kinds as immutable profiles.
package species

import (
	"errors"
	"fmt"

	"github.com/ahtohbi4/nature-simulator/habitat"
	"github.com/ahtohbi4/nature-simulator/random"
	"github.com/ahtohbi4/nature-simulator/traits"
)

// ErrInvalidProfile is returned by Validate for unusable profiles.
var ErrInvalidProfile = errors.New("species: invalid profile")

// Defaults used when a profile leaves the radii unset.
const (
	DefaultActionRadius = 10.0
	DefaultViewRadius   = 30.0
	DefaultColor        = "#000000"
)

// Profile is shared read-only by every agent of a species.
type Profile struct {
	Kind    string
	Color   string
	Habitat habitat.Habitat

	Lifetime        float64
	Speed           float64
	ViewRadius      float64
	ActionRadius    float64
	ReproductiveAge [2]int

	// Scatter is the ± percentage applied when sampling individuals.
	Scatter float64
}

// Tiger returns the built-in forest tiger.
func Tiger() Profile {
	return Profile{
		Kind:            "tiger",
		Color:           "#ff8800",
		Habitat:         habitat.MustNew("Forest", 0, 0, 500, 300),
		Lifetime:        100,
		Speed:           10,
		ViewRadius:      40,
		ActionRadius:    DefaultActionRadius,
		ReproductiveAge: [2]int{14, 90},
		Scatter:         random.DefaultScatter,
	}
}

// WithDefaults fills zero-valued optional fields.
func (p Profile) WithDefaults() Profile {
	if p.ActionRadius == 0 {
		p.ActionRadius = DefaultActionRadius
	}
	if p.ViewRadius == 0 {
		p.ViewRadius = DefaultViewRadius
	}
	if p.Color == "" {
		p.Color = DefaultColor
	}
	return p
}

// Validate checks that individuals can be constructed from the profile.
func (p Profile) Validate() error {
	switch {
	case p.Kind == "":
		return fmt.Errorf("%w: empty kind", ErrInvalidProfile)
	case p.Lifetime <= 0 || p.Speed <= 0 || p.ViewRadius <= 0 || p.ActionRadius <= 0:
		return fmt.Errorf("%w: %s: lifetime, speed and radii must be positive", ErrInvalidProfile, p.Kind)
	case p.Speed > p.ViewRadius:
		return fmt.Errorf("%w: %s: view radius %g must not be less than speed %g",
			ErrInvalidProfile, p.Kind, p.ViewRadius, p.Speed)
	case p.ReproductiveAge[0] > p.ReproductiveAge[1]:
		return fmt.Errorf("%w: %s: reproductive age %v is inverted", ErrInvalidProfile, p.Kind, p.ReproductiveAge)
	case p.Scatter < 0 || p.Scatter >= 100:
		return fmt.Errorf("%w: %s: scatter %g outside [0,100)", ErrInvalidProfile, p.Kind, p.Scatter)
	}
	return nil
}

// Means returns the averages individual traits are sampled around.
func (p Profile) Means() traits.Means {
	return traits.Means{
		Lifetime:        p.Lifetime,
		Speed:           p.Speed,
		ViewRadius:      p.ViewRadius,
		ActionRadius:    p.ActionRadius,
		ReproductiveAge: p.ReproductiveAge,
	}
}

// Sample draws traits for a new individual.
func (p *Profile) Sample(src random.Source) traits.Traits {
	return traits.Sample(src, p.Means(), p.Scatter)
}
