package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for a simulation day.
const (
	PhaseDistances = "distances"
	PhaseAgents    = "agents"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseDistances, PhaseAgents, PhaseRender, PhaseTelemetry}

// PerfSample holds timing data for a single day.
type PerfSample struct {
	DayDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks step timings over a rolling window of days.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	dayStart   time.Time
	phaseStart time.Time
	lastPhase  string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize days.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
		now:        time.Now,
	}
}

// StartDay begins timing a new day.
func (p *PerfCollector) StartDay() {
	p.dayStart = p.now()
	p.current = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndDay finishes the day and records the sample.
func (p *PerfCollector) EndDay() {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		DayDuration: now.Sub(p.dayStart),
		Phases:      p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated step timings.
type PerfStats struct {
	AvgDay time.Duration
	P50Day time.Duration
	MaxDay time.Duration

	// Share of the average day spent in each phase, in percent
	PhasePct map[string]float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{PhasePct: make(map[string]float64)}
	if p.sampleCount == 0 {
		return stats
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.DayDuration)
		total += s.DayDuration
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}
	slices.Sort(durations)

	stats.AvgDay = time.Duration(stat.Mean(durations, nil))
	stats.P50Day = time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil))
	stats.MaxDay = time.Duration(durations[len(durations)-1])

	if total > 0 {
		for phase, sum := range phaseSum {
			stats.PhasePct[phase] = float64(sum) / float64(total) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_day_us", s.AvgDay.Microseconds()),
		slog.Int64("p50_day_us", s.P50Day.Microseconds()),
		slog.Int64("max_day_us", s.MaxDay.Microseconds()),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of step timings.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgDayUS     int64   `csv:"avg_day_us"`
	P50DayUS     int64   `csv:"p50_day_us"`
	MaxDayUS     int64   `csv:"max_day_us"`
	DistancesPct float64 `csv:"distances_pct"`
	AgentsPct    float64 `csv:"agents_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a CSV row.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgDayUS:     s.AvgDay.Microseconds(),
		P50DayUS:     s.P50Day.Microseconds(),
		MaxDayUS:     s.MaxDay.Microseconds(),
		DistancesPct: s.PhasePct[PhaseDistances],
		AgentsPct:    s.PhasePct[PhaseAgents],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
