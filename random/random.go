// Package random provides the stochastic primitives the simulation depends on.
// Every random decision (positions, genders, trait scatter, headings) goes
// through a Source so runs can be reproduced from a seed and tests can script
// outcomes.
package random

import (
	"math"
	"math/rand"
	"strings"
)

// DefaultScatter is the spread, in percent, applied around mean values.
const DefaultScatter = 20.0

// Source supplies uniform random values.
type Source interface {
	// Int returns a uniform integer in [a, b].
	Int(a, b int) int
	// Float returns a uniform float in [a, b].
	Float(a, b float64) float64
	// Pick returns a uniform index in [0, n).
	Pick(n int) int
}

// Rand is a Source backed by a seeded math/rand generator.
// It also implements io.Reader so it can feed id generation.
type Rand struct {
	rng *rand.Rand
}

// New creates a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Int returns a uniform integer in [a, b]. Bounds may be given in any order.
func (r *Rand) Int(a, b int) int {
	if a > b {
		a, b = b, a
	}
	return a + r.rng.Intn(b-a+1)
}

// Float returns a uniform float in [a, b]. Bounds may be given in any order.
func (r *Rand) Float(a, b float64) float64 {
	if a > b {
		a, b = b, a
	}
	return a + r.rng.Float64()*(b-a)
}

// Pick returns a uniform index in [0, n). Returns 0 when n <= 0.
func (r *Rand) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Read fills p with random bytes.
func (r *Rand) Read(p []byte) (int, error) {
	return r.rng.Read(p)
}

// Choice returns a uniformly chosen item. items must not be empty.
func Choice[T any](src Source, items []T) T {
	return items[src.Pick(len(items))]
}

// FloatAround samples a float within ±scatter percent of value.
func FloatAround(src Source, value, scatter float64) float64 {
	lo := value * (1 - scatter/100)
	hi := value * (1 + scatter/100)
	return src.Float(lo, hi)
}

// IntAround samples an integer within ±scatter percent of value, with both
// bounds rounded to the nearest integer.
func IntAround(src Source, value int, scatter float64) int {
	lo := int(math.Round(float64(value) * (1 - scatter/100)))
	hi := int(math.Round(float64(value) * (1 + scatter/100)))
	return src.Int(lo, hi)
}

const nicknameAlphabet = "abcdefghijklmnopqrstuvwxyz"

// Nickname generates a 5-letter name with a capital first letter.
func Nickname(src Source) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(nicknameAlphabet[src.Pick(len(nicknameAlphabet))])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
