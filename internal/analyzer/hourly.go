package analyzer

import (
	"fmt"
	"math"
	"sort"

	"TradeSentinel/internal/calculator"
	"TradeSentinel/internal/model"
)

const unableToDetermine = "Unable to determine optimal execution time due to lack of data"

// OptimalExecutionTime suggests the execution hour with the historically
// calmest combination of volatility, volume and spread. Returns a fixed
// message when no series is held or no hour yields a defined score.
func (p *Pipeline) OptimalExecutionTime() string {
	hour, ok := BestExecutionHour(p.series)
	if !ok {
		return unableToDetermine
	}
	return fmt.Sprintf("Optimal execution time: %d:00", hour)
}

// BestExecutionHour groups bars by hour of day, takes the per-hour mean of
// volatility, volume and spread (NaN inputs are skipped), z-score
// normalizes each metric column across hours, and picks the hour with the
// lowest average normalized score. A column with a single hour or zero
// variance normalizes to NaN and is simply excluded from that hour's
// average. Ties resolve to the earliest hour.
func BestExecutionHour(series model.DerivedSeries) (int, bool) {
	if len(series) == 0 {
		return 0, false
	}

	byHour := map[int][]model.DerivedBar{}
	for _, b := range series {
		h := b.Time.Hour()
		byHour[h] = append(byHour[h], b)
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	volatility := make([]float64, len(hours))
	volume := make([]float64, len(hours))
	spread := make([]float64, len(hours))
	for i, h := range hours {
		var vols, vlms, sprs []float64
		for _, b := range byHour[h] {
			vols = append(vols, b.Volatility)
			vlms = append(vlms, b.Volume)
			sprs = append(sprs, b.Spread)
		}
		volatility[i] = calculator.Mean(vols)
		volume[i] = calculator.Mean(vlms)
		spread[i] = calculator.Mean(sprs)
	}

	zVolatility := calculator.ZScores(volatility)
	zVolume := calculator.ZScores(volume)
	zSpread := calculator.ZScores(spread)

	best, bestScore, found := 0, math.Inf(1), false
	for i, h := range hours {
		score := calculator.Mean([]float64{zVolatility[i], zVolume[i], zSpread[i]})
		if math.IsNaN(score) {
			continue
		}
		if score < bestScore {
			best, bestScore, found = h, score, true
		}
	}
	return best, found
}
