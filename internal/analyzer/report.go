package analyzer

import (
	"time"

	"TradeSentinel/internal/market"
	"TradeSentinel/internal/model"
)

// LatestQuote carries the latest-bar figures shown by the UI.
type LatestQuote struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`
}

// PricePoint is one sample of the close-price chart.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// Report is the full result of one analysis run. Advisories are carried
// here instead of being pushed at the presentation layer, so a run has an
// explicit, testable return contract. Risk is nil for a no-data run.
type Report struct {
	Symbol         string             `json:"symbol"`
	Exchange       market.Exchange    `json:"exchange"`
	MarketOpen     bool               `json:"market_open"`
	Advisories     []model.Advisory   `json:"advisories"`
	BarCount       int                `json:"bar_count"`
	Latest         *LatestQuote       `json:"latest,omitempty"`
	Risk           *model.RiskMetrics `json:"risk_metrics,omitempty"`
	Recommendation string             `json:"recommendation,omitempty"`
	OptimalTime    string             `json:"optimal_time,omitempty"`
	Prices         []PricePoint       `json:"prices,omitempty"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// Analyze runs the whole pipeline to completion: session check, fetch and
// derive, risk metrics, recommendation and optimal hour. A no-data
// condition short-circuits after the fetch and yields a report without
// metrics; a provider failure returns an error instead of a report.
func (p *Pipeline) Analyze(tradeSize float64, period, interval string) (*Report, error) {
	report := &Report{
		Symbol:      p.Symbol,
		Exchange:    p.Exchange,
		MarketOpen:  p.MarketOpen(),
		GeneratedAt: p.Now(),
	}

	series, advisories, err := p.FetchAndDerive(period, interval)
	report.Advisories = advisories
	if err != nil {
		return nil, err
	}
	if series == nil {
		return report, nil
	}

	latest := series.Latest()
	report.BarCount = len(series)
	report.Latest = &LatestQuote{
		Open:   latest.Open,
		High:   latest.High,
		Low:    latest.Low,
		Volume: latest.Volume,
	}
	report.Risk = p.RiskMetrics(tradeSize)
	report.Recommendation = Recommend(report.Risk)
	report.OptimalTime = p.OptimalExecutionTime()

	report.Prices = make([]PricePoint, len(series))
	for i, b := range series {
		report.Prices[i] = PricePoint{Time: b.Time, Close: b.Close}
	}
	return report, nil
}
