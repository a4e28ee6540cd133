package game

import (
	"log/slog"

	"github.com/ahtohbi4/nature-simulator/telemetry"
)

// flushTelemetry closes the stats window once it has covered enough days.
// days is the number of days simulated so far.
func (p *Planet) flushTelemetry(days int) {
	if !p.collector.ShouldFlush(days) {
		return
	}

	stats := p.collector.Flush(days, p.census(days-1))
	perfStats := p.perf.Stats()

	if p.statsCallback != nil {
		p.statsCallback(stats)
	}

	if p.logStats {
		stats.LogStats()
		slog.Info("perf", "window_end", days, "timings", perfStats)
	}

	if err := p.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := p.output.WritePerf(perfStats, stats.WindowEndDay); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// census converts the field census for the collector.
func (p *Planet) census(day int) telemetry.Population {
	c := p.field.Census(day)
	return telemetry.Population{
		Alive:   c.Alive,
		Dead:    c.Dead,
		Females: c.Females,
		Males:   c.Males,
		Ready:   c.Ready,
		Ages:    c.Ages,
	}
}
