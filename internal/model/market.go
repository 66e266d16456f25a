package model

import "time"

// Bar represents a single OHLCV sample for one trading interval.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered sequence of bars for one symbol, ascending by time,
// no duplicate timestamps. An empty Series signals "no data".
type Series []Bar

// Latest returns the most recent bar. Callers must check IsEmpty first.
func (s Series) Latest() Bar { return s[len(s)-1] }

func (s Series) IsEmpty() bool { return len(s) == 0 }

// Closes extracts the close column.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volume column.
func (s Series) Volumes() []float64 {
	vols := make([]float64, len(s))
	for i, b := range s {
		vols[i] = b.Volume
	}
	return vols
}

// DerivedBar is a Bar augmented with per-bar rolling statistics.
// Volatility, VolumeMA and PriceChange are NaN where the trailing window
// (or previous bar) is not yet available.
type DerivedBar struct {
	Bar
	Volatility  float64 // sample stddev of close, trailing 20 bars
	VolumeMA    float64 // mean volume, trailing 20 bars
	PriceChange float64 // percent change of close vs previous bar
	Spread      float64 // high minus low
}

// DerivedSeries holds the fetched window plus derived columns.
// Computed once per fetch and not mutated afterwards.
type DerivedSeries []DerivedBar

// Latest returns the most recent derived bar. Callers must check length first.
func (d DerivedSeries) Latest() DerivedBar { return d[len(d)-1] }

// Bars returns the underlying raw series.
func (d DerivedSeries) Bars() Series {
	bars := make(Series, len(d))
	for i, b := range d {
		bars[i] = b.Bar
	}
	return bars
}
