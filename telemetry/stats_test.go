package telemetry

import (
	"math"
	"testing"
)

func TestComputeAgeStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, std, p10, p50, p90 := ComputeAgeStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// population std of 1..10
	if math.Abs(std-math.Sqrt(8.25)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(8.25))
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("percentiles = %v/%v/%v, want 1/5/9", p10, p50, p90)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestComputeAgeStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeAgeStats([]float64{42})
	if mean != 42 || std != 0 || p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("single value stats = %v %v %v %v %v", mean, std, p10, p50, p90)
	}
}

func TestComputeAgeStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeAgeStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}
