package calculator

import "math"

// RollingStdDev computes the trailing sample standard deviation over a
// fixed window. Positions where fewer than window values are available
// are NaN.
func RollingStdDev(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = StdDev(values[i-window+1 : i+1])
	}
	return out
}

// RollingMean computes the trailing mean over a fixed window, with the
// same leading NaN gap as RollingStdDev.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = Mean(values[i-window+1 : i+1])
	}
	return out
}

// PercentChange computes the simple percent change of each value against
// its predecessor. The first position is NaN.
func PercentChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}
