package notifier

import (
	"fmt"
	"strings"

	"TradeSentinel/internal/analyzer"
)

// FormatRiskAlert formats a high-risk report into a Telegram message.
func FormatRiskAlert(report *analyzer.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 <b>TradeSentinel risk alert</b> | %s (%s)\n\n",
		report.Symbol, report.Exchange))

	if report.Risk != nil {
		b.WriteString(fmt.Sprintf("Total risk: %.3f\n", report.Risk.TotalRisk))
		b.WriteString(fmt.Sprintf("  volatility: %.3f | liquidity: %.3f\n",
			report.Risk.VolatilityRisk, report.Risk.LiquidityRisk))
		b.WriteString(fmt.Sprintf("  spread: %.3f | volume: %+.3f\n\n",
			report.Risk.SpreadRisk, report.Risk.VolumeRisk))
	}
	if report.Recommendation != "" {
		b.WriteString(report.Recommendation + "\n")
	}
	if report.OptimalTime != "" {
		b.WriteString(report.OptimalTime + "\n")
	}
	b.WriteString(fmt.Sprintf("\nGenerated %s", report.GeneratedAt.Format("2006-01-02 15:04")))

	return b.String()
}
