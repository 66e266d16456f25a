package quote

import (
	"path/filepath"
	"testing"
	"time"

	"TradeSentinel/internal/model"
)

func testSeries(n int) model.Series {
	base := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)
	bars := make(model.Series, n)
	for i := 0; i < n; i++ {
		bars[i] = model.Bar{
			Time:   base.Add(time.Duration(i) * 15 * time.Minute),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100 + float64(i),
			Volume: 1000,
		}
	}
	return bars
}

func TestSQLiteCache_RoundTrip(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	if _, ok := cache.Lookup("AAPL", "5d", "15m"); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	stored := testSeries(5)
	if err := cache.Store("AAPL", "5d", "15m", stored); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok := cache.Lookup("AAPL", "5d", "15m")
	if !ok {
		t.Fatal("expected a hit after store")
	}
	if len(got) != len(stored) {
		t.Fatalf("expected %d bars, got %d", len(stored), len(got))
	}
	for i := range stored {
		if !got[i].Time.Equal(stored[i].Time) || got[i].Close != stored[i].Close {
			t.Errorf("bar %d: stored %+v, got %+v", i, stored[i], got[i])
		}
	}

	// a different key must still miss
	if _, ok := cache.Lookup("AAPL", "1mo", "15m"); ok {
		t.Error("expected a miss for a different period")
	}
}

func TestSQLiteCache_TTLExpiry(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), 10*time.Minute)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if err := cache.Store("AAPL", "5d", "15m", testSeries(3)); err != nil {
		t.Fatalf("store: %v", err)
	}

	now = now.Add(9 * time.Minute)
	if _, ok := cache.Lookup("AAPL", "5d", "15m"); !ok {
		t.Error("expected a hit inside the TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Lookup("AAPL", "5d", "15m"); ok {
		t.Error("expected a miss after the TTL")
	}
}

func TestSQLiteCache_StoreReplaces(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	if err := cache.Store("AAPL", "5d", "15m", testSeries(5)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := cache.Store("AAPL", "5d", "15m", testSeries(3)); err != nil {
		t.Fatalf("second store: %v", err)
	}

	got, ok := cache.Lookup("AAPL", "5d", "15m")
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got) != 3 {
		t.Errorf("expected the second store to replace the first, got %d bars", len(got))
	}
}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	inner := &MockFetcher{Bars: testSeries(5)}
	fetcher := NewCachedFetcher(inner, cache)

	for i := 0; i < 3; i++ {
		bars, err := fetcher.FetchBars("AAPL", "5d", "15m")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(bars) != 5 {
			t.Fatalf("fetch %d: expected 5 bars, got %d", i, len(bars))
		}
	}
	if inner.Calls != 1 {
		t.Errorf("expected one provider call, got %d", inner.Calls)
	}
}

func TestCachedFetcher_DoesNotCacheEmpty(t *testing.T) {
	inner := &MockFetcher{Bars: model.Series{}}
	fetcher := NewCachedFetcher(inner, NewNoopCache())

	for i := 0; i < 2; i++ {
		bars, err := fetcher.FetchBars("NOPE", "5d", "15m")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if !bars.IsEmpty() {
			t.Fatalf("fetch %d: expected empty series", i)
		}
	}
	if inner.Calls != 2 {
		t.Errorf("empty responses must retry the provider, got %d calls", inner.Calls)
	}
}
