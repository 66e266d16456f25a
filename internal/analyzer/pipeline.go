package analyzer

import (
	"fmt"
	"time"

	"TradeSentinel/internal/calculator"
	"TradeSentinel/internal/market"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/quote"
)

// rollingWindow is the trailing bar count behind Volatility and VolumeMA.
const rollingWindow = 20

// Pipeline runs one full settlement-risk analysis for a single symbol.
// One instance per analysis request; instances are not reused and need no
// locking. The clock is injected so tests can fix "now".
type Pipeline struct {
	Symbol   string
	Exchange market.Exchange
	Fetcher  quote.Fetcher
	Now      func() time.Time

	series model.DerivedSeries
}

// NewPipeline creates a pipeline bound to a symbol/exchange pair.
func NewPipeline(symbol string, exchange market.Exchange, fetcher quote.Fetcher, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{Symbol: symbol, Exchange: exchange, Fetcher: fetcher, Now: now}
}

// MarketOpen reports whether the exchange session is open right now.
func (p *Pipeline) MarketOpen() bool {
	return market.SessionOpen(p.Exchange, p.Now())
}

// FetchAndDerive requests the historical window from the provider and
// computes the derived columns. A closed market only adds a warning
// advisory, the fetch proceeds. An empty series adds an error advisory and
// returns a nil result; the rest of the pipeline must not run in that
// case. Provider failures are not converted to advisories; they propagate
// to the caller.
func (p *Pipeline) FetchAndDerive(period, interval string) (model.DerivedSeries, []model.Advisory, error) {
	var advisories []model.Advisory

	if !p.MarketOpen() {
		advisories = append(advisories, model.Advisory{
			Level:   model.AdvisoryWarning,
			Message: "Market is closed. Data might be outdated.",
		})
	}

	bars, err := p.Fetcher.FetchBars(p.Symbol, period, interval)
	if err != nil {
		return nil, advisories, fmt.Errorf("fetch %s: %w", p.Symbol, err)
	}

	if bars.IsEmpty() {
		advisories = append(advisories, model.Advisory{
			Level:   model.AdvisoryError,
			Message: fmt.Sprintf("No data found for %s.", p.Symbol),
		})
		return nil, advisories, nil
	}

	advisories = append(advisories, model.Advisory{
		Level:   model.AdvisorySuccess,
		Message: fmt.Sprintf("Fetched %d records for %s", len(bars), p.Symbol),
	})

	p.series = Derive(bars)
	return p.series, advisories, nil
}

// Derive computes the per-bar rolling statistics for a fetched series.
func Derive(bars model.Series) model.DerivedSeries {
	closes := bars.Closes()
	volatility := calculator.RollingStdDev(closes, rollingWindow)
	volumeMA := calculator.RollingMean(bars.Volumes(), rollingWindow)
	priceChange := calculator.PercentChange(closes)

	derived := make(model.DerivedSeries, len(bars))
	for i, b := range bars {
		derived[i] = model.DerivedBar{
			Bar:         b,
			Volatility:  volatility[i],
			VolumeMA:    volumeMA[i],
			PriceChange: priceChange[i],
			Spread:      b.High - b.Low,
		}
	}
	return derived
}

// capRatio caps a risk ratio at 1. NaN compares false against 1, so an
// undefined ratio resolves to 1, matching the degenerate-input policy of
// the other components.
func capRatio(v float64) float64 {
	if v < 1 {
		return v
	}
	return 1
}

// RiskMetrics reduces the latest derived bar plus the whole-window volume
// mean into the four risk components and their mean. Each component is
// capped at 1; a zero divisor substitutes a risk of 1 for that component.
// Returns nil until a series has been fetched.
func (p *Pipeline) RiskMetrics(tradeSize float64) *model.RiskMetrics {
	if len(p.series) == 0 {
		return nil
	}

	latest := p.series.Latest()
	avgVolume := calculator.Mean(p.series.Bars().Volumes())

	volatilityRisk := 1.0
	if latest.Close != 0 {
		volatilityRisk = capRatio(latest.Volatility / latest.Close)
	}

	liquidityRisk := 1.0
	if avgVolume != 0 {
		liquidityRisk = capRatio(tradeSize / avgVolume)
	}

	spreadRisk := 1.0
	if latest.Close != 0 {
		spreadRisk = capRatio(latest.Spread / latest.Close)
	}

	// volume_risk goes negative when current volume runs above its moving
	// average; only the upper bound is enforced. Unvalidated but kept.
	volumeRatio := 1.0
	if latest.VolumeMA != 0 {
		volumeRatio = latest.Volume / latest.VolumeMA
	}
	volumeRisk := capRatio(1 - volumeRatio)

	total := (volatilityRisk + liquidityRisk + spreadRisk + volumeRisk) / 4

	return &model.RiskMetrics{
		VolatilityRisk: volatilityRisk,
		LiquidityRisk:  liquidityRisk,
		SpreadRisk:     spreadRisk,
		VolumeRisk:     volumeRisk,
		TotalRisk:      capRatio(total),
	}
}

// Recommend maps total risk to one of the three advisory strings.
// The 0.8 boundary itself is medium risk; only values strictly above it
// are high risk.
func Recommend(metrics *model.RiskMetrics) string {
	if metrics == nil {
		return ""
	}
	switch {
	case metrics.TotalRisk > 0.8:
		return model.RecommendHighRisk
	case metrics.TotalRisk > 0.5:
		return model.RecommendMediumRisk
	default:
		return model.RecommendLowRisk
	}
}
