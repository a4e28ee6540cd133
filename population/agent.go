package population

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/ahtohbi4/nature-simulator/components"
	"github.com/ahtohbi4/nature-simulator/habitat"
	"github.com/ahtohbi4/nature-simulator/notify"
	"github.com/ahtohbi4/nature-simulator/species"
	"github.com/ahtohbi4/nature-simulator/systems"
	"github.com/ahtohbi4/nature-simulator/traits"
	"github.com/ahtohbi4/nature-simulator/windrose"
)

const farewell = "I see a light... Goodbye... my friends..."

// Tick is what an agent receives for one day.
type Tick struct {
	Day int
	systems.Neighborhood
}

// Agent is a handle to one agent in a Field. It is a small value and can be
// copied freely. Component pointers are fetched per call because creating a
// child may relocate storage.
type Agent struct {
	f *Field
	e ecs.Entity
}

// Entity returns the underlying ECS entity.
func (a Agent) Entity() ecs.Entity { return a.e }

// Valid reports whether the handle refers to an agent.
func (a Agent) Valid() bool { return a.f != nil && a.f.world.Alive(a.e) }

func (a Agent) ident() *components.Identity { return a.f.identMap.Get(a.e) }
func (a Agent) vitals() *components.Vitals  { return a.f.vitalsMap.Get(a.e) }
func (a Agent) motion() *components.Motion  { return a.f.motionMap.Get(a.e) }
func (a Agent) senses() *components.Senses  { return a.f.sensesMap.Get(a.e) }

func (a Agent) ID() uuid.UUID               { return a.ident().ID }
func (a Agent) Name() string                { return a.ident().Name }
func (a Agent) Gender() traits.Gender       { return a.ident().Gender }
func (a Agent) Species() *species.Profile   { return a.ident().Species }
func (a Agent) Kind() string                { return a.ident().Species.Kind }
func (a Agent) Speed() float64              { return a.motion().Speed }
func (a Agent) ViewRadius() float64         { return a.senses().ViewRadius }
func (a Agent) ActionRadius() float64       { return a.senses().ActionRadius }
func (a Agent) Health() float64             { return a.vitals().Health }
func (a Agent) Lifetime() float64           { return a.vitals().Lifetime }
func (a Agent) DayOfBirth() int             { return a.vitals().DayOfBirth }
func (a Agent) Emotion() components.Emotion { return a.vitals().Emotion }
func (a Agent) Parents() components.Lineage { return *a.f.lineageMap.Get(a.e) }
func (a Agent) Fertility() components.Fertility {
	return *a.f.fertMap.Get(a.e)
}

// FullName is "<kind> <Nickname>".
func (a Agent) FullName() string {
	id := a.ident()
	return id.Species.Kind + " " + id.Name
}

// Position returns the current location.
func (a Agent) Position() components.Position { return *a.f.posMap.Get(a.e) }

// Direction returns the heading in radians. ok is false until one is chosen.
func (a Agent) Direction() (rad float64, ok bool) {
	m := a.motion()
	return m.Direction, m.Directed
}

// Age is the number of days since birth.
func (a Agent) Age(day int) int { return day - a.vitals().DayOfBirth }

// IsAlive reports whether health is above the survival threshold.
func (a Agent) IsAlive() bool { return a.vitals().Alive() }

// SetHealth stores health clamped to [0, 100].
func (a Agent) SetHealth(h float64) { a.vitals().SetHealth(h) }

// SetEmotion changes the agent's mood.
func (a Agent) SetEmotion(e components.Emotion) { a.vitals().Emotion = e }

// Death returns the day and reason of death. ok is false while alive.
func (a Agent) Death() (day int, reason components.DeathReason, ok bool) {
	v := a.vitals()
	return v.DayOfDeath, v.Reason, v.Reason != components.DeathNone
}

// Father resolves the recorded father, if known.
func (a Agent) Father() (Agent, bool) { return a.f.Agent(a.Parents().Father) }

// Mother resolves the recorded mother, if known.
func (a Agent) Mother() (Agent, bool) { return a.f.Agent(a.Parents().Mother) }

func ready(id *components.Identity, v *components.Vitals, fert *components.Fertility, day int) bool {
	if !v.Alive() || v.Emotion == components.EmotionScared {
		return false
	}
	if !fert.InReproductiveAge(day - v.DayOfBirth) {
		return false
	}
	return id.Gender == traits.Male || fert.Recovered(day)
}

// IsReadyToReproduce reports whether the agent may mate on day.
func (a Agent) IsReadyToReproduce(day int) bool {
	return ready(a.ident(), a.vitals(), a.f.fertMap.Get(a.e), day)
}

// CompatibleWith reports whether a and partner can have a child together.
func (a Agent) CompatibleWith(partner Agent, day int) bool {
	if a.e == partner.e || a.Gender() == partner.Gender() {
		return false
	}
	if !a.IsReadyToReproduce(day) || !partner.IsReadyToReproduce(day) {
		return false
	}
	return !a.Parents().IsParent(partner.ID()) && !partner.Parents().IsParent(a.ID())
}

// Step runs one day of the agent's life: ageing, reacting to neighbours,
// choosing a direction and moving. Dead agents do nothing.
func (a Agent) Step(t Tick) error {
	v := a.vitals()
	if !v.Alive() {
		return nil
	}
	if float64(a.Age(t.Day)) >= v.Lifetime {
		a.Die(t.Day, components.DeathOldness)
		return nil
	}

	engaged := false
	wandering := len(t.Neighbors) == 0 || t.Unseen > 0

	for _, n := range t.Neighbors {
		other := Agent{f: a.f, e: n.E}
		if n.Distance > a.ViewRadius() || !a.CompatibleWith(other, t.Day) {
			wandering = true
			continue
		}

		if n.Distance <= a.ActionRadius() && n.Distance <= other.ActionRadius() {
			if a.Gender() == traits.Female {
				if _, err := a.GiveBirth(other, t.Day); err != nil {
					return err
				}
				// the father moves on; the mother keeps wandering
				other.RecalculateDirection(true)
				wandering = true
			} else {
				// the mother forces our new heading
				engaged = true
			}
			continue
		}
		a.DirectTo(other)
		engaged = true
	}

	if wandering && !engaged {
		a.RecalculateDirection(false)
	}
	a.Move()
	return nil
}

// GiveBirth creates a child with father at the mother's position and
// heading.
func (a Agent) GiveBirth(father Agent, day int) (Agent, error) {
	if a.Gender() != traits.Female {
		return Agent{}, ErrNotFemale
	}

	fert := a.f.fertMap.Get(a.e)
	fert.HasGivenBirth = true
	fert.LastChildbirth = day

	m := a.motion()
	motion := components.Motion{Direction: m.Direction, Directed: m.Directed}
	lineage := components.Lineage{Father: father.ID(), Mother: a.ID()}

	child, err := a.f.create(a.Species(), day, a.Position(), motion, lineage)
	if err != nil {
		return Agent{}, err
	}
	a.f.observer.Childbirth(a, father, child, day)
	return child, nil
}

// Die marks the agent dead. Calling it on a dead agent does nothing.
func (a Agent) Die(day int, reason components.DeathReason) {
	v := a.vitals()
	if !v.Alive() || v.Reason != components.DeathNone {
		return
	}
	v.SetHealth(0)
	v.DayOfDeath = day
	v.Reason = reason

	a.say(day, farewell)
	a.f.observer.Died(a, day)
}

// RecalculateDirection picks a new heading when forced, when none was ever
// chosen, or when nearby habitat walls rule out the current one.
func (a Agent) RecalculateDirection(forced bool) {
	pos := a.Position()
	view := a.ViewRadius()

	rose := windrose.New()
	for _, w := range a.Species().Habitat.NearWalls(pos.X, pos.Y, view) {
		switch w {
		case habitat.WallTop:
			rose.Subtract(windrose.N, windrose.NE, windrose.NW)
		case habitat.WallRight:
			rose.Subtract(windrose.NE, windrose.E, windrose.SE)
		case habitat.WallBottom:
			rose.Subtract(windrose.SE, windrose.S, windrose.SW)
		case habitat.WallLeft:
			rose.Subtract(windrose.SW, windrose.W, windrose.NW)
		}
	}

	m := a.motion()
	if !forced && m.Directed && !(rose.IsModified() && !rose.CheckDirection(m.Direction)) {
		return
	}
	if d, ok := rose.RandomDirection(a.f.rng); ok {
		m.Direction = d
		m.Directed = true
	}
}

// DirectTo turns the agent to face target.
func (a Agent) DirectTo(target Agent) {
	from, to := a.Position(), target.Position()
	m := a.motion()
	m.Direction = math.Atan2(to.Y-from.Y, to.X-from.X)
	m.Directed = true
}

// Move advances the agent by its speed along its heading.
func (a Agent) Move() {
	m := a.motion()
	if !m.Directed {
		return
	}
	p := a.f.posMap.Get(a.e)
	p.X += m.Speed * math.Cos(m.Direction)
	p.Y += m.Speed * math.Sin(m.Direction)
}

func (a Agent) say(day int, message string) {
	n, err := notify.New(a.FullName(), day, message)
	if err != nil {
		slog.Error("failed to notify", "agent", a.FullName(), "error", err)
		return
	}
	a.f.notes.Push(n)
}
