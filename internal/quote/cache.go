package quote

import (
	"log"

	"TradeSentinel/internal/model"
)

// Cache stores provider responses keyed by symbol/period/interval so that
// repeated analyses within the TTL do not hit the provider again. Only raw
// bars are cached; analysis results are never stored.
type Cache interface {
	Lookup(symbol, period, interval string) (model.Series, bool)
	Store(symbol, period, interval string, bars model.Series) error
	Close() error
}

// NoopCache is a no-op implementation used when SQLite is not configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Lookup(_, _, _ string) (model.Series, bool)   { return nil, false }
func (n *NoopCache) Store(_, _, _ string, _ model.Series) error   { return nil }
func (n *NoopCache) Close() error                                 { return nil }

// CachedFetcher wraps a Fetcher with a Cache.
type CachedFetcher struct {
	Inner Fetcher
	Cache Cache
}

func NewCachedFetcher(inner Fetcher, cache Cache) *CachedFetcher {
	return &CachedFetcher{Inner: inner, Cache: cache}
}

func (c *CachedFetcher) Name() string { return c.Inner.Name() }

// FetchBars serves from the cache when a fresh entry exists, otherwise
// delegates to the wrapped fetcher. Empty responses are not cached so the
// next request retries the provider.
func (c *CachedFetcher) FetchBars(symbol, period, interval string) (model.Series, error) {
	if bars, ok := c.Cache.Lookup(symbol, period, interval); ok {
		return bars, nil
	}
	bars, err := c.Inner.FetchBars(symbol, period, interval)
	if err != nil {
		return nil, err
	}
	if !bars.IsEmpty() {
		if err := c.Cache.Store(symbol, period, interval, bars); err != nil {
			log.Printf("[WARN] cache store %s: %v", symbol, err)
		}
	}
	return bars, nil
}
