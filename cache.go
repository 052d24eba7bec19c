package tradelab

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CachedProvider wraps a MarketDataProvider with an in-process TTL cache, so
// repeated marks of the same positions stay cheap. It holds no package level
// state: construct one and pass it around by handle.
//
// Current prices are keyed by ticker, series by ticker plus date range.
// Expiry is checked on read, there is no background eviction. Errors are
// never cached.
type CachedProvider struct {
	src MarketDataProvider
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	prices map[string]cachedPrice
	series map[string]cachedSeries
}

type cachedPrice struct {
	value   float64
	expires time.Time
}

type cachedSeries struct {
	candles []Candle
	expires time.Time
}

func NewCachedProvider(src MarketDataProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		src:    src,
		ttl:    ttl,
		now:    time.Now,
		prices: make(map[string]cachedPrice),
		series: make(map[string]cachedSeries),
	}
}

func (c *CachedProvider) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	c.mu.Lock()
	if e, ok := c.prices[ticker]; ok {
		if c.now().Before(e.expires) {
			c.mu.Unlock()
			return e.value, nil
		}
		delete(c.prices, ticker)
	}
	c.mu.Unlock()

	v, err := c.src.CurrentPrice(ctx, ticker)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.prices[ticker] = cachedPrice{value: v, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return v, nil
}

func (c *CachedProvider) HistoricalSeries(ctx context.Context, ticker string, from, to time.Time) ([]Candle, error) {
	key := seriesKey(ticker, from, to)

	c.mu.Lock()
	if e, ok := c.series[key]; ok {
		if c.now().Before(e.expires) {
			c.mu.Unlock()
			return e.candles, nil
		}
		delete(c.series, key)
	}
	c.mu.Unlock()

	candles, err := c.src.HistoricalSeries(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.series[key] = cachedSeries{candles: candles, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return candles, nil
}

func seriesKey(ticker string, from, to time.Time) string {
	return fmt.Sprintf("%s|%d|%d", ticker, from.Unix(), to.Unix())
}
