// Package traits defines the biological values of an individual agent.
package traits

import (
	"github.com/ahtohbi4/nature-simulator/random"
)

// PostnatalFactor scales viewRadius/speed into the female recovery period.
const PostnatalFactor = 10.0

// Gender of an agent.
type Gender uint8

const (
	Female Gender = iota
	Male
)

// Genders lists all genders in a stable order.
var Genders = []Gender{Female, Male}

// String returns the gender name.
func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// Means are species-level averages that individual traits scatter around.
type Means struct {
	Lifetime        float64
	Speed           float64
	ViewRadius      float64
	ActionRadius    float64
	ReproductiveAge [2]int
}

// Traits are the values sampled for one individual at construction.
type Traits struct {
	Gender           Gender
	Lifetime         float64 // days
	Speed            float64 // units per day
	ViewRadius       float64
	ActionRadius     float64
	ReproductiveFrom int // days of age
	ReproductiveTo   int
	PostnatalPeriod  float64 // days between litters (females)
}

// Sample draws individual traits within ±scatter percent of the means.
func Sample(src random.Source, m Means, scatter float64) Traits {
	t := Traits{
		Gender:           random.Choice(src, Genders),
		Lifetime:         random.FloatAround(src, m.Lifetime, scatter),
		Speed:            random.FloatAround(src, m.Speed, scatter),
		ActionRadius:     random.FloatAround(src, m.ActionRadius, scatter),
		ViewRadius:       random.FloatAround(src, m.ViewRadius, scatter),
		ReproductiveFrom: random.IntAround(src, m.ReproductiveAge[0], scatter),
		ReproductiveTo:   random.IntAround(src, m.ReproductiveAge[1], scatter),
	}
	t.PostnatalPeriod = Postnatal(t.ViewRadius, t.Speed)
	return t
}

// Postnatal returns the recovery period for the given sight and speed.
func Postnatal(viewRadius, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return PostnatalFactor * (viewRadius / speed)
}
