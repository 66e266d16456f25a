package quote

import "TradeSentinel/internal/model"

// Fetcher defines the interface for fetching historical bars.
// Period and interval are opaque provider strings (e.g. "5d", "15m");
// their validation belongs to the provider, not the caller.
type Fetcher interface {
	FetchBars(symbol, period, interval string) (model.Series, error)
	Name() string
}
