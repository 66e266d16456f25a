package calculator

import "math"

// Mean returns the arithmetic mean of the defined (non-NaN) values.
// Returns NaN when no value is defined.
func Mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev returns the sample standard deviation (n-1 divisor) of the
// defined values. Returns NaN when fewer than two values are defined.
func StdDev(values []float64) float64 {
	mean := Mean(values)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sum += d * d
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(n-1))
}

// ZScores normalizes each value against the column mean and sample
// standard deviation. A column with fewer than two defined values, or with
// zero variance, yields NaN entries; that is propagated, not special-cased.
func ZScores(values []float64) []float64 {
	mean := Mean(values)
	std := StdDev(values)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}
