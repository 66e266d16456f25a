package calculator

import (
	"math"
	"testing"
)

func TestRollingStdDev_LeadingGap(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i + 1)
	}
	got := RollingStdDev(values, 20)

	for i := 0; i < 19; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("index %d: expected NaN before the window fills, got %v", i, got[i])
		}
	}
	// sample stddev of 1..20 is sqrt(35)
	if !almostEqual(got[19], math.Sqrt(35)) {
		t.Errorf("index 19: expected sqrt(35), got %v", got[19])
	}
}

func TestRollingMean_LeadingGap(t *testing.T) {
	values := make([]float64, 22)
	for i := range values {
		values[i] = float64(i + 1)
	}
	got := RollingMean(values, 20)

	for i := 0; i < 19; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("index %d: expected NaN before the window fills, got %v", i, got[i])
		}
	}
	if !almostEqual(got[19], 10.5) {
		t.Errorf("index 19: expected 10.5, got %v", got[19])
	}
	if !almostEqual(got[21], 12.5) {
		t.Errorf("index 21: expected 12.5, got %v", got[21])
	}
}

func TestPercentChange(t *testing.T) {
	got := PercentChange([]float64{100, 110, 99})
	if !math.IsNaN(got[0]) {
		t.Errorf("first position should be NaN, got %v", got[0])
	}
	if !almostEqual(got[1], 0.1) {
		t.Errorf("expected 0.1, got %v", got[1])
	}
	if !almostEqual(got[2], -0.1) {
		t.Errorf("expected -0.1, got %v", got[2])
	}
}
