// Package population holds the agents of a simulation and drives their
// per-day steps.
//
// Agents live in an ark ECS world. The Field keeps the population order (the
// order agents were created in) and an id lookup table; neither shrinks when
// an agent dies, so dead records stay readable.
package population

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"github.com/paulmach/orb"

	"github.com/ahtohbi4/nature-simulator/components"
	"github.com/ahtohbi4/nature-simulator/notify"
	"github.com/ahtohbi4/nature-simulator/random"
	"github.com/ahtohbi4/nature-simulator/species"
	"github.com/ahtohbi4/nature-simulator/systems"
	"github.com/ahtohbi4/nature-simulator/traits"
)

var (
	// ErrInvalidConfiguration is returned when sampled traits cannot form a
	// valid agent, e.g. speed exceeding the view radius.
	ErrInvalidConfiguration = errors.New("population: invalid configuration")
	// ErrNotFemale is returned by GiveBirth on a male agent.
	ErrNotFemale = errors.New("population: only females give birth")
)

// Index selects how the per-day distance relation is computed.
type Index string

const (
	IndexPairwise Index = "pairwise"
	IndexGrid     Index = "grid"
)

// Options configures a Field. Zero values get defaults.
type Options struct {
	Rand     random.Source
	IDs      io.Reader // entropy for agent ids; defaults to Rand when it is a reader
	Notes    notify.Sink
	Observer Observer
	Index    Index
	CellSize float64 // grid cell size; 0 uses the largest view radius
}

// Field owns every agent of a simulation.
type Field struct {
	world *ecs.World

	mapper *ecs.Map7[
		components.Identity,
		components.Position,
		components.Motion,
		components.Senses,
		components.Vitals,
		components.Fertility,
		components.Lineage,
	]
	filter *ecs.Filter7[
		components.Identity,
		components.Position,
		components.Motion,
		components.Senses,
		components.Vitals,
		components.Fertility,
		components.Lineage,
	]

	identMap   *ecs.Map1[components.Identity]
	posMap     *ecs.Map1[components.Position]
	motionMap  *ecs.Map1[components.Motion]
	sensesMap  *ecs.Map1[components.Senses]
	vitalsMap  *ecs.Map1[components.Vitals]
	fertMap    *ecs.Map1[components.Fertility]
	lineageMap *ecs.Map1[components.Lineage]

	order []ecs.Entity
	byID  map[uuid.UUID]ecs.Entity

	rng      random.Source
	ids      io.Reader
	notes    notify.Sink
	observer Observer
	index    Index
	cellSize float64
	maxView  float64
}

// New creates an empty field.
func New(opts Options) *Field {
	world := ecs.NewWorld()

	if opts.Rand == nil {
		opts.Rand = random.New(1)
	}
	if opts.IDs == nil {
		if r, ok := opts.Rand.(io.Reader); ok {
			opts.IDs = r
		}
	}
	if opts.Notes == nil {
		opts.Notes = notify.Discard{}
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if opts.Index == "" {
		opts.Index = IndexPairwise
	}

	return &Field{
		world: world,
		mapper: ecs.NewMap7[
			components.Identity,
			components.Position,
			components.Motion,
			components.Senses,
			components.Vitals,
			components.Fertility,
			components.Lineage,
		](world),
		filter: ecs.NewFilter7[
			components.Identity,
			components.Position,
			components.Motion,
			components.Senses,
			components.Vitals,
			components.Fertility,
			components.Lineage,
		](world),
		identMap:   ecs.NewMap1[components.Identity](world),
		posMap:     ecs.NewMap1[components.Position](world),
		motionMap:  ecs.NewMap1[components.Motion](world),
		sensesMap:  ecs.NewMap1[components.Senses](world),
		vitalsMap:  ecs.NewMap1[components.Vitals](world),
		fertMap:    ecs.NewMap1[components.Fertility](world),
		lineageMap: ecs.NewMap1[components.Lineage](world),
		byID:       make(map[uuid.UUID]ecs.Entity),
		rng:        opts.Rand,
		ids:        opts.IDs,
		notes:      opts.Notes,
		observer:   opts.Observer,
		index:      opts.Index,
		cellSize:   opts.CellSize,
	}
}

// Spawn creates an agent of the given species at a random integer position
// inside its habitat. The agent has no direction until its first step.
func (f *Field) Spawn(profile *species.Profile, day int) (Agent, error) {
	h := profile.Habitat
	pos := components.Position{
		X: f.coordinate(h.X0(), h.X1()),
		Y: f.coordinate(h.Y0(), h.Y1()),
	}
	return f.create(profile, day, pos, components.Motion{}, components.Lineage{})
}

// coordinate picks an integer in [lo, hi], or any value when the span
// holds no integer.
func (f *Field) coordinate(lo, hi float64) float64 {
	from, to := math.Ceil(lo), math.Floor(hi)
	if from > to {
		return f.rng.Float(lo, hi)
	}
	return float64(f.rng.Int(int(from), int(to)))
}

// Seed spawns count agents of a species, stopping at the first error.
func (f *Field) Seed(profile *species.Profile, count, day int) ([]Agent, error) {
	agents := make([]Agent, 0, count)
	for i := 0; i < count; i++ {
		a, err := f.Spawn(profile, day)
		if err != nil {
			return agents, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// create samples traits and adds the agent to the world.
func (f *Field) create(profile *species.Profile, day int, pos components.Position, motion components.Motion, lineage components.Lineage) (Agent, error) {
	t := profile.Sample(f.rng)
	if t.Speed <= 0 || t.ViewRadius <= 0 || t.ActionRadius <= 0 {
		return Agent{}, fmt.Errorf("%w: %s: speed and radii must be positive", ErrInvalidConfiguration, profile.Kind)
	}
	if t.Speed > t.ViewRadius {
		return Agent{}, fmt.Errorf("%w: %s: speed %.2f exceeds view radius %.2f",
			ErrInvalidConfiguration, profile.Kind, t.Speed, t.ViewRadius)
	}

	id, err := f.newID()
	if err != nil {
		return Agent{}, fmt.Errorf("generating agent id: %w", err)
	}

	ident := components.Identity{
		ID:      id,
		Name:    random.Nickname(f.rng),
		Gender:  t.Gender,
		Species: profile,
	}
	motion.Speed = t.Speed
	senses := components.Senses{ViewRadius: t.ViewRadius, ActionRadius: t.ActionRadius}
	vitals := components.Vitals{
		Health:     components.MaxHealth,
		Lifetime:   t.Lifetime,
		DayOfBirth: day,
	}
	fert := components.Fertility{
		AgeFrom:         t.ReproductiveFrom,
		AgeTo:           t.ReproductiveTo,
		PostnatalPeriod: t.PostnatalPeriod,
	}

	e := f.mapper.NewEntity(&ident, &pos, &motion, &senses, &vitals, &fert, &lineage)
	f.order = append(f.order, e)
	f.byID[id] = e
	f.maxView = max(f.maxView, t.ViewRadius)

	a := Agent{f: f, e: e}
	a.say(day, fmt.Sprintf("Hi everyone! I am a %s. Today I was born.", a.FullName()))
	f.observer.Born(a, day)
	return a, nil
}

func (f *Field) newID() (uuid.UUID, error) {
	if f.ids == nil {
		return uuid.NewRandom()
	}
	return uuid.NewRandomFromReader(f.ids)
}

// Len returns the number of agents ever created.
func (f *Field) Len() int {
	return len(f.order)
}

// Agents returns every agent in population order.
func (f *Field) Agents() []Agent {
	agents := make([]Agent, len(f.order))
	for i, e := range f.order {
		agents[i] = Agent{f: f, e: e}
	}
	return agents
}

// Agent resolves an id through the lookup table.
func (f *Field) Agent(id uuid.UUID) (Agent, bool) {
	e, ok := f.byID[id]
	if !ok {
		return Agent{}, false
	}
	return Agent{f: f, e: e}, true
}

// MaxViewRadius returns the largest view radius of any agent created so far.
func (f *Field) MaxViewRadius() float64 {
	return f.maxView
}

// Distances computes the neighbour relation for the current positions.
func (f *Field) Distances() systems.Relation {
	points := make([]systems.Point, len(f.order))
	for i, e := range f.order {
		p := f.posMap.Get(e)
		points[i] = systems.Point{E: e, Pos: orb.Point{p.X, p.Y}}
	}

	if f.index == IndexGrid {
		return systems.GridDistances(points, f.cellSize, f.maxView)
	}
	return systems.PairwiseDistances(points)
}

// Step advances every agent by one day. The distance relation and the agent
// order are taken at the start, so children born during the step are neither
// seen nor stepped until the next day. The first construction error aborts
// the step.
func (f *Field) Step(day int) error {
	return f.StepWith(day, f.Distances())
}

// StepWith is Step with a relation computed by the caller.
func (f *Field) StepWith(day int, rel systems.Relation) error {
	order := slices.Clone(f.order)

	for _, e := range order {
		a := Agent{f: f, e: e}
		if err := a.Step(Tick{Day: day, Neighborhood: rel.Of(e)}); err != nil {
			return fmt.Errorf("stepping %s: %w", a.FullName(), err)
		}
	}
	return nil
}

// Census summarises the population on a given day.
type Census struct {
	Alive   int
	Dead    int
	Females int // alive only
	Males   int
	Ready   int // alive and ready to reproduce
	Ages    []float64
}

// Census counts agents with a single query over the world.
func (f *Field) Census(day int) Census {
	var c Census
	query := f.filter.Query()
	for query.Next() {
		ident, _, _, _, vitals, fert, _ := query.Get()
		if !vitals.Alive() {
			c.Dead++
			continue
		}
		c.Alive++
		c.Ages = append(c.Ages, float64(day-vitals.DayOfBirth))
		if ident.Gender == traits.Female {
			c.Females++
		} else {
			c.Males++
		}
		if ready(ident, vitals, fert, day) {
			c.Ready++
		}
	}
	return c
}
