package analyzer

import (
	"math"
	"testing"
	"time"

	"TradeSentinel/internal/market"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/quote"
)

// hourBars builds two derived bars in the given hour with fixed stats.
func hourBars(hour int, volatility, volume, spread float64) []model.DerivedBar {
	day := time.Date(2026, 1, 5, hour, 0, 0, 0, time.UTC)
	bars := make([]model.DerivedBar, 2)
	for i := range bars {
		bars[i] = model.DerivedBar{
			Bar: model.Bar{
				Time:   day.Add(time.Duration(i) * 15 * time.Minute),
				Close:  100,
				Volume: volume,
			},
			Volatility: volatility,
			VolumeMA:   volume,
			Spread:     spread,
		}
	}
	return bars
}

func TestBestExecutionHour_DominantHour(t *testing.T) {
	// hour 10 is strictly lowest on every metric, so it must win
	var series model.DerivedSeries
	series = append(series, hourBars(9, 2, 2000, 2)...)
	series = append(series, hourBars(10, 1, 1000, 1)...)
	series = append(series, hourBars(11, 3, 3000, 3)...)

	hour, ok := BestExecutionHour(series)
	if !ok {
		t.Fatal("expected a determinable hour")
	}
	if hour != 10 {
		t.Errorf("expected hour 10, got %d", hour)
	}
}

func TestBestExecutionHour_TieBreaksToEarliestHour(t *testing.T) {
	// hours 9 and 10 tie on every metric; 9 comes first in ascending order
	var series model.DerivedSeries
	series = append(series, hourBars(10, 1, 10, 1)...)
	series = append(series, hourBars(9, 1, 10, 1)...)
	series = append(series, hourBars(11, 4, 40, 4)...)

	hour, ok := BestExecutionHour(series)
	if !ok {
		t.Fatal("expected a determinable hour")
	}
	if hour != 9 {
		t.Errorf("expected the earliest tied hour 9, got %d", hour)
	}
}

func TestBestExecutionHour_SingleHourUndetermined(t *testing.T) {
	// a single hour normalizes every column to NaN, so no score survives
	series := model.DerivedSeries(hourBars(9, 1, 1000, 1))
	if _, ok := BestExecutionHour(series); ok {
		t.Error("a single hour must not yield a determinable result")
	}
}

func TestBestExecutionHour_ZeroVarianceUndetermined(t *testing.T) {
	// identical hours leave every z-score column with zero variance
	var series model.DerivedSeries
	series = append(series, hourBars(9, 1, 1000, 1)...)
	series = append(series, hourBars(10, 1, 1000, 1)...)
	if _, ok := BestExecutionHour(series); ok {
		t.Error("zero-variance columns must not yield a determinable result")
	}
}

func TestBestExecutionHour_SkipsUndefinedVolatility(t *testing.T) {
	// NaN volatility cells (unfilled rolling window) are skipped in the
	// hourly means, the remaining metrics still decide
	var series model.DerivedSeries
	series = append(series, hourBars(9, math.NaN(), 2000, 2)...)
	series = append(series, hourBars(10, math.NaN(), 1000, 1)...)
	series = append(series, hourBars(11, math.NaN(), 3000, 3)...)

	hour, ok := BestExecutionHour(series)
	if !ok {
		t.Fatal("expected a determinable hour")
	}
	if hour != 10 {
		t.Errorf("expected hour 10, got %d", hour)
	}
}

func TestBestExecutionHour_EmptySeries(t *testing.T) {
	if _, ok := BestExecutionHour(nil); ok {
		t.Error("an empty series must not yield a determinable result")
	}
}

func TestOptimalExecutionTime_Strings(t *testing.T) {
	p := NewPipeline("TEST", market.ExchangeUS, &quote.MockFetcher{}, clock)
	if got := p.OptimalExecutionTime(); got != unableToDetermine {
		t.Errorf("expected the unable-to-determine message before a fetch, got %q", got)
	}

	var series model.DerivedSeries
	series = append(series, hourBars(9, 2, 2000, 2)...)
	series = append(series, hourBars(10, 1, 1000, 1)...)
	series = append(series, hourBars(11, 3, 3000, 3)...)
	p.series = series

	if got := p.OptimalExecutionTime(); got != "Optimal execution time: 10:00" {
		t.Errorf("unexpected optimal time string: %q", got)
	}
}
