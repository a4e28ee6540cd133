package population

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/ahtohbi4/nature-simulator/components"
	"github.com/ahtohbi4/nature-simulator/habitat"
	"github.com/ahtohbi4/nature-simulator/notify"
	"github.com/ahtohbi4/nature-simulator/random"
	"github.com/ahtohbi4/nature-simulator/species"
	"github.com/ahtohbi4/nature-simulator/traits"
	"github.com/ahtohbi4/nature-simulator/windrose"
)

// recorder captures notifications and lifecycle events.
type recorder struct {
	notes       []notify.Notification
	born        int
	died        int
	childbirths int
}

func (r *recorder) Push(n notify.Notification)          { r.notes = append(r.notes, n) }
func (r *recorder) Born(Agent, int)                     { r.born++ }
func (r *recorder) Died(Agent, int)                     { r.died++ }
func (r *recorder) Childbirth(Agent, Agent, Agent, int) { r.childbirths++ }

func (r *recorder) count(message string) int {
	n := 0
	for _, note := range r.notes {
		if note.Message == message {
			n++
		}
	}
	return n
}

func newTestField(seed int64, index Index) (*Field, *recorder) {
	rec := &recorder{}
	f := New(Options{
		Rand:     random.New(seed),
		Notes:    rec,
		Observer: rec,
		Index:    index,
	})
	return f, rec
}

func tiger() *species.Profile {
	p := species.Tiger()
	return &p
}

// spawnAt creates an adult, long-lived agent of the given gender at (x, y).
func spawnAt(t *testing.T, f *Field, p *species.Profile, g traits.Gender, x, y float64) Agent {
	t.Helper()
	a, err := f.Spawn(p, 0)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	f.identMap.Get(a.e).Gender = g
	*f.posMap.Get(a.e) = components.Position{X: x, Y: y}
	*f.sensesMap.Get(a.e) = components.Senses{ViewRadius: 40, ActionRadius: 10}
	f.vitalsMap.Get(a.e).Lifetime = 1000
	fert := f.fertMap.Get(a.e)
	fert.AgeFrom, fert.AgeTo = 0, 1000
	fert.PostnatalPeriod = 10
	return a
}

func TestSpawnWithinHabitat(t *testing.T) {
	f, rec := newTestField(1, IndexPairwise)
	p := tiger()

	agents, err := f.Seed(p, 50, 0)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if f.Len() != 50 || rec.born != 50 {
		t.Fatalf("len = %d, born = %d, want 50", f.Len(), rec.born)
	}

	seen := make(map[string]bool)
	for _, a := range agents {
		pos := a.Position()
		if !p.Habitat.Contains(pos.X, pos.Y) {
			t.Errorf("%s spawned outside habitat at %+v", a.FullName(), pos)
		}
		if pos.X != math.Trunc(pos.X) || pos.Y != math.Trunc(pos.Y) {
			t.Errorf("spawn position %+v is not integral", pos)
		}
		if _, ok := a.Direction(); ok {
			t.Error("seeded agent should have no direction")
		}
		if a.Health() != components.MaxHealth || !a.IsAlive() {
			t.Errorf("health = %v, want full", a.Health())
		}
		if a.Speed() > a.ViewRadius() {
			t.Errorf("speed %v exceeds view %v", a.Speed(), a.ViewRadius())
		}
		name := a.Name()
		if len(name) != 5 || !unicode.IsUpper(rune(name[0])) {
			t.Errorf("bad nickname %q", name)
		}
		if !strings.HasPrefix(a.FullName(), "tiger ") {
			t.Errorf("full name %q", a.FullName())
		}
		if seen[a.ID().String()] {
			t.Errorf("duplicate id %s", a.ID())
		}
		seen[a.ID().String()] = true

		got, ok := f.Agent(a.ID())
		if !ok || got.Entity() != a.Entity() {
			t.Error("id lookup failed")
		}
	}

	hello := "Hi everyone! I am a " + agents[0].FullName() + ". Today I was born."
	if rec.notes[0].Message != hello || rec.notes[0].Author != agents[0].FullName() {
		t.Errorf("first note = %+v", rec.notes[0])
	}
}

// TestSpawnInNarrowHabitat covers habitats whose span holds no integer.
func TestSpawnInNarrowHabitat(t *testing.T) {
	f, _ := newTestField(4, IndexPairwise)
	p := tiger()
	p.Habitat = habitat.MustNew("Pond", 0.2, 0.2, 0.8, 0.8)
	p.Speed, p.ViewRadius, p.ActionRadius = 0.1, 0.5, 0.2

	for i := 0; i < 20; i++ {
		a, err := f.Spawn(p, 0)
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if pos := a.Position(); !p.Habitat.Contains(pos.X, pos.Y) {
			t.Fatalf("spawned outside %s at %+v", p.Habitat.Name(), pos)
		}
	}
}

func TestSpawnRejectsSpeedAboveView(t *testing.T) {
	f, _ := newTestField(1, IndexPairwise)
	p := tiger()
	p.Speed, p.ViewRadius, p.Scatter = 50, 40, 0

	if _, err := f.Spawn(p, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if f.Len() != 0 {
		t.Errorf("len = %d, want 0", f.Len())
	}
}

func TestSeedStopsAtFirstError(t *testing.T) {
	f, _ := newTestField(1, IndexPairwise)
	p := tiger()
	p.ActionRadius, p.Scatter = -1, 0

	agents, err := f.Seed(p, 5, 0)
	if !errors.Is(err, ErrInvalidConfiguration) || len(agents) != 0 {
		t.Errorf("Seed = %d agents, %v", len(agents), err)
	}
}

func TestDeathByAge(t *testing.T) {
	f, rec := newTestField(2, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Male, 100, 100)
	f.vitalsMap.Get(a.e).Lifetime = 5

	if err := a.Step(Tick{Day: 4}); err != nil {
		t.Fatal(err)
	}
	if !a.IsAlive() {
		t.Fatal("agent died before its lifetime")
	}

	if err := a.Step(Tick{Day: 5}); err != nil {
		t.Fatal(err)
	}
	if a.IsAlive() || a.Health() != 0 {
		t.Fatalf("agent alive after lifetime, health %v", a.Health())
	}
	day, reason, ok := a.Death()
	if !ok || day != 5 || reason != components.DeathOldness {
		t.Errorf("death = (%d, %v, %v), want (5, oldness, true)", day, reason, ok)
	}

	pos := a.Position()
	for d := 6; d < 10; d++ {
		if err := a.Step(Tick{Day: d}); err != nil {
			t.Fatal(err)
		}
	}
	if rec.count(farewell) != 1 || rec.died != 1 {
		t.Errorf("farewell %d times, died %d times, want once", rec.count(farewell), rec.died)
	}
	if a.Position() != pos {
		t.Error("dead agent moved")
	}
}

func TestHealthClamped(t *testing.T) {
	f, _ := newTestField(3, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Female, 50, 50)

	a.SetHealth(250)
	if a.Health() != 100 {
		t.Errorf("health = %v, want 100", a.Health())
	}
	a.SetHealth(10)
	if a.IsAlive() {
		t.Error("health 10 is not alive")
	}
	a.SetHealth(-3)
	if a.Health() != 0 {
		t.Errorf("health = %v, want 0", a.Health())
	}
}

func TestGiveBirthInheritsPositionAndDirection(t *testing.T) {
	f, rec := newTestField(4, IndexPairwise)
	p := tiger()
	mother := spawnAt(t, f, p, traits.Female, 120, 80)
	father := spawnAt(t, f, p, traits.Male, 125, 80)
	mother.DirectTo(father)

	child, err := mother.GiveBirth(father, 20)
	if err != nil {
		t.Fatalf("GiveBirth: %v", err)
	}

	if child.Position() != mother.Position() {
		t.Errorf("child at %+v, mother at %+v", child.Position(), mother.Position())
	}
	cd, cok := child.Direction()
	md, mok := mother.Direction()
	if cd != md || cok != mok {
		t.Errorf("child direction (%v, %v), mother (%v, %v)", cd, cok, md, mok)
	}
	if fert := mother.Fertility(); !fert.HasGivenBirth || fert.LastChildbirth != 20 {
		t.Errorf("mother fertility %+v", fert)
	}
	if child.DayOfBirth() != 20 || child.Age(20) != 0 {
		t.Errorf("child born on %d", child.DayOfBirth())
	}
	if got, ok := child.Father(); !ok || got.ID() != father.ID() {
		t.Error("father not resolved")
	}
	if got, ok := child.Mother(); !ok || got.ID() != mother.ID() {
		t.Error("mother not resolved")
	}
	if child.Species() != p {
		t.Error("child should share the species profile")
	}
	if f.Len() != 3 || rec.childbirths != 1 {
		t.Errorf("len = %d, childbirths = %d", f.Len(), rec.childbirths)
	}
}

func TestGiveBirthRequiresFemale(t *testing.T) {
	f, _ := newTestField(5, IndexPairwise)
	male := spawnAt(t, f, tiger(), traits.Male, 10, 10)
	female := spawnAt(t, f, tiger(), traits.Female, 10, 10)

	if _, err := male.GiveBirth(female, 20); !errors.Is(err, ErrNotFemale) {
		t.Errorf("err = %v, want ErrNotFemale", err)
	}
}

func TestPostnatalReadiness(t *testing.T) {
	f, _ := newTestField(6, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Female, 50, 50)
	fert := f.fertMap.Get(a.e)
	fert.HasGivenBirth = true
	fert.LastChildbirth = 5
	fert.PostnatalPeriod = 10

	tests := []struct {
		day  int
		want bool
	}{
		{12, false},
		{14, false},
		{15, true},
		{40, true},
	}
	for _, tt := range tests {
		if got := a.IsReadyToReproduce(tt.day); got != tt.want {
			t.Errorf("day %d: ready = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestReadiness(t *testing.T) {
	f, _ := newTestField(7, IndexPairwise)
	male := spawnAt(t, f, tiger(), traits.Male, 50, 50)
	fert := f.fertMap.Get(male.e)
	fert.AgeFrom, fert.AgeTo = 14, 90

	tests := []struct {
		name  string
		day   int
		setup func()
		want  bool
	}{
		{"too young", 13, func() {}, false},
		{"lower bound", 14, func() {}, true},
		{"upper bound", 90, func() {}, true},
		{"too old", 91, func() {}, false},
		{"scared", 30, func() { male.SetEmotion(components.EmotionScared) }, false},
		{"in love", 30, func() { male.SetEmotion(components.EmotionInLove) }, true},
		{"dead", 30, func() { male.SetHealth(5) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			if got := male.IsReadyToReproduce(tt.day); got != tt.want {
				t.Errorf("ready = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompatibility(t *testing.T) {
	f, _ := newTestField(8, IndexPairwise)
	p := tiger()
	mother := spawnAt(t, f, p, traits.Female, 50, 50)
	father := spawnAt(t, f, p, traits.Male, 52, 50)
	other := spawnAt(t, f, p, traits.Female, 54, 50)

	if !mother.CompatibleWith(father, 20) || !father.CompatibleWith(mother, 20) {
		t.Fatal("ready opposite-gender pair should be compatible")
	}
	if mother.CompatibleWith(other, 20) {
		t.Error("same gender is not compatible")
	}

	son, err := mother.GiveBirth(father, 20)
	if err != nil {
		t.Fatal(err)
	}
	f.identMap.Get(son.e).Gender = traits.Male
	fert := f.fertMap.Get(son.e)
	fert.AgeFrom, fert.AgeTo = 0, 1000

	if mother.CompatibleWith(son, 40) || son.CompatibleWith(mother, 40) {
		t.Error("mother and son are not compatible")
	}
	if !other.CompatibleWith(son, 40) {
		t.Error("unrelated female should be compatible with the son")
	}
}

// TestLeftWallDirection places an agent near the left wall and checks the
// chosen heading never points into it.
func TestLeftWallDirection(t *testing.T) {
	expected := windrose.New()
	expected.Subtract(windrose.SW, windrose.W, windrose.NW)

	for seed := int64(0); seed < 200; seed++ {
		f, _ := newTestField(seed, IndexPairwise)
		a := spawnAt(t, f, tiger(), traits.Female, 10, 150)

		a.RecalculateDirection(false)
		d, ok := a.Direction()
		if !ok {
			t.Fatalf("seed %d: no direction chosen", seed)
		}
		if !expected.CheckDirection(d) {
			t.Fatalf("seed %d: direction %.2f° points at the left wall", seed, windrose.ToDegrees(d))
		}
	}
}

func TestRecalculateKeepsValidDirection(t *testing.T) {
	f, _ := newTestField(9, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Male, 10, 150)

	f.motionMap.Get(a.e).Direction = 0.3
	f.motionMap.Get(a.e).Directed = true
	a.RecalculateDirection(false)
	if d, _ := a.Direction(); d != 0.3 {
		t.Errorf("valid direction replaced by %v", d)
	}

	f.motionMap.Get(a.e).Direction = math.Pi
	a.RecalculateDirection(false)
	if d, _ := a.Direction(); d == math.Pi {
		t.Error("direction into the wall was kept")
	}

	// away from walls the rose is unmodified and any heading is kept
	*f.posMap.Get(a.e) = components.Position{X: 250, Y: 150}
	f.motionMap.Get(a.e).Direction = math.Pi
	a.RecalculateDirection(false)
	if d, _ := a.Direction(); d != math.Pi {
		t.Errorf("direction changed to %v in open field", d)
	}
}

func TestMove(t *testing.T) {
	f, _ := newTestField(10, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Male, 100, 100)

	a.Move()
	if a.Position() != (components.Position{X: 100, Y: 100}) {
		t.Error("undirected agent moved")
	}

	m := f.motionMap.Get(a.e)
	m.Speed, m.Direction, m.Directed = 10, math.Pi/2, true
	a.Move()
	pos := a.Position()
	if math.Abs(pos.X-100) > 1e-9 || math.Abs(pos.Y-110) > 1e-9 {
		t.Errorf("position %+v, want (100, 110)", pos)
	}
}

func TestStepDirectsTowardPartner(t *testing.T) {
	f, _ := newTestField(11, IndexPairwise)
	p := tiger()
	female := spawnAt(t, f, p, traits.Female, 100, 100)
	spawnAt(t, f, p, traits.Male, 100, 130)

	if err := f.Step(20); err != nil {
		t.Fatal(err)
	}
	if d, _ := female.Direction(); math.Abs(d-math.Pi/2) > 1e-9 {
		t.Errorf("female heading %v, want south toward the male", d)
	}
	if f.Len() != 2 {
		t.Errorf("len = %d, no birth expected outside action radius", f.Len())
	}
}

// TestMotherAtWallTurnsAway has a mother give birth at the left wall while
// another male stands far off. She must leave the wall heading behind.
func TestMotherAtWallTurnsAway(t *testing.T) {
	allowed := windrose.New()
	allowed.Subtract(windrose.SW, windrose.W, windrose.NW)

	for seed := int64(0); seed < 50; seed++ {
		f, rec := newTestField(seed, IndexPairwise)
		p := tiger()
		mother := spawnAt(t, f, p, traits.Female, 3, 150)
		m := f.motionMap.Get(mother.e)
		m.Direction, m.Directed = math.Pi, true
		spawnAt(t, f, p, traits.Male, 8, 150)
		spawnAt(t, f, p, traits.Male, 400, 150)

		if err := f.Step(20); err != nil {
			t.Fatal(err)
		}
		if rec.childbirths != 1 {
			t.Fatalf("seed %d: childbirths = %d, want 1", seed, rec.childbirths)
		}
		d, ok := mother.Direction()
		if !ok || !allowed.CheckDirection(d) {
			t.Fatalf("seed %d: mother heading %.2f° points at the wall", seed, windrose.ToDegrees(d))
		}
		if pos := mother.Position(); pos.X < 3-mother.Speed()/2 {
			t.Errorf("seed %d: mother walked west to %+v", seed, pos)
		}
	}
}

func TestSayLogsInvalidMessage(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	f, rec := newTestField(5, IndexPairwise)
	a := spawnAt(t, f, tiger(), traits.Male, 100, 100)
	before := len(rec.notes)

	a.say(0, "")
	if len(rec.notes) != before {
		t.Errorf("invalid message was queued")
	}
	if !strings.Contains(buf.String(), "failed to notify") || !strings.Contains(buf.String(), a.FullName()) {
		t.Errorf("log = %q, want the failure with the agent name", buf.String())
	}
}

// TestSingleChild checks one mating pair adds exactly one agent per day
// whichever partner steps first.
func TestSingleChild(t *testing.T) {
	tests := []struct {
		name  string
		first traits.Gender
	}{
		{"female first", traits.Female},
		{"male first", traits.Male},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, rec := newTestField(12, IndexPairwise)
			p := tiger()
			second := traits.Male
			if tt.first == traits.Male {
				second = traits.Female
			}
			spawnAt(t, f, p, tt.first, 100, 100)
			spawnAt(t, f, p, second, 105, 100)

			var mother Agent
			for _, a := range f.Agents() {
				if a.Gender() == traits.Female {
					mother = a
				}
			}
			before := mother.Position()

			if err := f.Step(20); err != nil {
				t.Fatal(err)
			}
			if f.Len() != 3 || rec.childbirths != 1 {
				t.Fatalf("len = %d, childbirths = %d, want 3 and 1", f.Len(), rec.childbirths)
			}

			child := f.Agents()[2]
			if child.Position() != before {
				t.Errorf("newborn moved during its birth day: %+v vs %+v", child.Position(), before)
			}
		})
	}
}

func TestDistancesSymmetric(t *testing.T) {
	f, _ := newTestField(13, IndexPairwise)
	if _, err := f.Seed(tiger(), 20, 0); err != nil {
		t.Fatal(err)
	}

	rel := f.Distances()
	agents := f.Agents()
	for _, a := range agents {
		for _, b := range agents {
			if a.Entity() == b.Entity() {
				continue
			}
			ab, ok1 := rel.Distance(a.Entity(), b.Entity())
			ba, ok2 := rel.Distance(b.Entity(), a.Entity())
			if !ok1 || !ok2 || ab != ba {
				t.Fatalf("distance %v/%v asymmetric", ab, ba)
			}
			pa, pb := a.Position(), b.Position()
			want := math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
			if math.Abs(ab-want) > 1e-9 {
				t.Errorf("distance = %v, want %v", ab, want)
			}
		}
	}
}

// TestGridMatchesPairwiseRun runs the same seed with both indexes and expects
// identical populations.
func TestGridMatchesPairwiseRun(t *testing.T) {
	run := func(index Index) []components.Position {
		f, _ := newTestField(99, index)
		if _, err := f.Seed(tiger(), 12, 0); err != nil {
			t.Fatal(err)
		}
		for day := 0; day < 60; day++ {
			if err := f.Step(day); err != nil {
				t.Fatal(err)
			}
		}
		var out []components.Position
		for _, a := range f.Agents() {
			out = append(out, a.Position())
		}
		return out
	}

	pairwise, grid := run(IndexPairwise), run(IndexGrid)
	if len(pairwise) != len(grid) {
		t.Fatalf("populations differ: %d vs %d", len(pairwise), len(grid))
	}
	for i := range pairwise {
		if pairwise[i] != grid[i] {
			t.Fatalf("agent %d at %+v vs %+v", i, pairwise[i], grid[i])
		}
	}
}

func TestCensus(t *testing.T) {
	f, _ := newTestField(14, IndexPairwise)
	p := tiger()
	spawnAt(t, f, p, traits.Female, 10, 10)
	spawnAt(t, f, p, traits.Male, 200, 200)
	dead := spawnAt(t, f, p, traits.Male, 300, 100)
	dead.Die(3, components.DeathIllness)

	c := f.Census(10)
	if c.Alive != 2 || c.Dead != 1 || c.Females != 1 || c.Males != 1 || c.Ready != 2 {
		t.Errorf("census %+v", c)
	}
	if len(c.Ages) != 2 || c.Ages[0] != 10 {
		t.Errorf("ages %v", c.Ages)
	}
}
