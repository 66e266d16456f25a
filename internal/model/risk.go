package model

// RiskMetrics holds the four independent risk components in [0,1] plus
// their unweighted mean. Field names are fixed: the UI and the
// recommendation step consume them verbatim.
type RiskMetrics struct {
	VolatilityRisk float64 `json:"volatility_risk"`
	LiquidityRisk  float64 `json:"liquidity_risk"`
	SpreadRisk     float64 `json:"spread_risk"`
	VolumeRisk     float64 `json:"volume_risk"`
	TotalRisk      float64 `json:"total_risk"`
}

// Trade recommendations, a pure function of total_risk.
const (
	RecommendHighRisk   = "High Risk - Avoid trading or split into smaller orders"
	RecommendMediumRisk = "Medium Risk - Consider splitting trade or waiting for better conditions"
	RecommendLowRisk    = "Low Risk - Proceed with trade"
)

// Advisory levels used by pipeline advisories.
const (
	AdvisoryInfo    = "info"
	AdvisoryWarning = "warning"
	AdvisoryError   = "error"
	AdvisorySuccess = "success"
)

// Advisory is a non-fatal, user-visible informational message emitted
// during a pipeline run. Advisories are part of the returned report,
// rendering is left to the presentation layer.
type Advisory struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
