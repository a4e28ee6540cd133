package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of days.
type WindowStats struct {
	WindowStartDay int `csv:"-"`
	WindowEndDay   int `csv:"window_end"`

	// Population at window end
	Alive int `csv:"alive"`
	Dead  int `csv:"dead"`

	// Events during window
	Births int `csv:"births"`
	Deaths int `csv:"deaths"`

	// Age distribution of living agents, in days
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	Females int `csv:"females"`
	Males   int `csv:"males"`
	Ready   int `csv:"ready"` // ready to reproduce
}

// ComputeAgeStats returns mean, population standard deviation and the
// empirical 10th/50th/90th percentiles. Empty input yields zeros.
func ComputeAgeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	std = math.Sqrt(variance)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartDay),
		slog.Int("window_end", s.WindowEndDay),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_std", s.AgeStd),
		slog.Float64("age_p10", s.AgeP10),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_p90", s.AgeP90),
		slog.Int("females", s.Females),
		slog.Int("males", s.Males),
		slog.Int("ready", s.Ready),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
