package components

// Health bounds.
const (
	MaxHealth      = 100.0
	AliveThreshold = 10.0
)

// Vitals tracks life and death.
type Vitals struct {
	Health     float64 // 0..100
	Lifetime   float64 // days
	DayOfBirth int
	DayOfDeath int // valid when Reason != DeathNone
	Reason     DeathReason
	Emotion    Emotion
}

// Alive reports whether health is above the survival threshold.
func (v *Vitals) Alive() bool {
	return v.Health > AliveThreshold
}

// SetHealth stores h clamped to [0, MaxHealth].
func (v *Vitals) SetHealth(h float64) {
	switch {
	case h < 0:
		h = 0
	case h > MaxHealth:
		h = MaxHealth
	}
	v.Health = h
}

// Fertility holds reproduction state.
type Fertility struct {
	AgeFrom         int
	AgeTo           int
	PostnatalPeriod float64 // days
	HasGivenBirth   bool
	LastChildbirth  int // valid when HasGivenBirth
}

// InReproductiveAge reports whether age lies in [AgeFrom, AgeTo].
func (f *Fertility) InReproductiveAge(age int) bool {
	return age >= f.AgeFrom && age <= f.AgeTo
}

// Recovered reports whether a female may give birth again on day.
func (f *Fertility) Recovered(day int) bool {
	return !f.HasGivenBirth || float64(day-f.LastChildbirth) >= f.PostnatalPeriod
}
