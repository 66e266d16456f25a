package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestMean_SkipsNaN(t *testing.T) {
	got := Mean([]float64{1, math.NaN(), 3})
	if !almostEqual(got, 2) {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestMean_AllNaN(t *testing.T) {
	if !math.IsNaN(Mean([]float64{math.NaN(), math.NaN()})) {
		t.Error("expected NaN for all-NaN input")
	}
	if !math.IsNaN(Mean(nil)) {
		t.Error("expected NaN for empty input")
	}
}

func TestStdDev_Sample(t *testing.T) {
	// {1,2,3,4}: mean 2.5, squared deviations sum 5, sample variance 5/3
	got := StdDev([]float64{1, 2, 3, 4})
	want := math.Sqrt(5.0 / 3.0)
	if !almostEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStdDev_Degenerate(t *testing.T) {
	if !math.IsNaN(StdDev([]float64{5})) {
		t.Error("expected NaN for a single value")
	}
	if !math.IsNaN(StdDev([]float64{5, math.NaN()})) {
		t.Error("expected NaN when only one value is defined")
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("expected 0 for zero variance, got %v", got)
	}
}

func TestZScores(t *testing.T) {
	got := ZScores([]float64{1, 2, 3})
	want := []float64{-1, 0, 1}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestZScores_ZeroVariancePropagatesNaN(t *testing.T) {
	for i, z := range ZScores([]float64{5, 5}) {
		if !math.IsNaN(z) {
			t.Errorf("index %d: expected NaN for zero-variance column, got %v", i, z)
		}
	}
}

func TestZScores_SingleValuePropagatesNaN(t *testing.T) {
	if z := ZScores([]float64{5}); !math.IsNaN(z[0]) {
		t.Errorf("expected NaN for single-entry column, got %v", z[0])
	}
}
