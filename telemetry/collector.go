package telemetry

import "github.com/google/uuid"

// Population is a census of the field sampled when a window closes.
type Population struct {
	Alive   int
	Dead    int
	Females int
	Males   int
	Ready   int
	Ages    []float64 // alive agents only
}

// Collector accumulates events within day windows and produces WindowStats.
type Collector struct {
	windowDays     int
	windowStartDay int

	births       int
	deaths       int
	birthsByKind map[string]int
	deathsByKind map[string]int
}

// NewCollector creates a collector flushing every windowDays days.
func NewCollector(windowDays int) *Collector {
	if windowDays < 1 {
		windowDays = 1
	}
	return &Collector{
		windowDays:   windowDays,
		birthsByKind: make(map[string]int),
		deathsByKind: make(map[string]int),
	}
}

// Record counts an event in the current window. Only births that happen in
// the simulation (with a mother) count as births.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventBirth:
		if e.MotherID == uuid.Nil {
			return
		}
		c.births++
		c.birthsByKind[e.Kind]++
	case EventDeath:
		c.deaths++
		c.deathsByKind[e.Kind]++
	}
}

// ShouldFlush returns true once the window has covered windowDays days.
func (c *Collector) ShouldFlush(day int) bool {
	return day-c.windowStartDay >= c.windowDays
}

// Flush produces the stats for the window ending at day and resets the
// counters.
func (c *Collector) Flush(day int, pop Population) WindowStats {
	mean, std, p10, p50, p90 := ComputeAgeStats(pop.Ages)

	stats := WindowStats{
		WindowStartDay: c.windowStartDay,
		WindowEndDay:   day,

		Alive:   pop.Alive,
		Dead:    pop.Dead,
		Births:  c.births,
		Deaths:  c.deaths,
		Females: pop.Females,
		Males:   pop.Males,
		Ready:   pop.Ready,

		AgeMean: mean,
		AgeStd:  std,
		AgeP10:  p10,
		AgeP50:  p50,
		AgeP90:  p90,
	}

	c.windowStartDay = day
	c.births = 0
	c.deaths = 0
	clear(c.birthsByKind)
	clear(c.deathsByKind)

	return stats
}

// BirthsByKind returns the births of the current window per species.
func (c *Collector) BirthsByKind() map[string]int {
	return c.birthsByKind
}

// DeathsByKind returns the deaths of the current window per species.
func (c *Collector) DeathsByKind() map[string]int {
	return c.deathsByKind
}

// WindowDays returns the number of days per window.
func (c *Collector) WindowDays() int {
	return c.windowDays
}
