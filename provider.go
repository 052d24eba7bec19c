package tradelab

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Candle is one OHLCV bar of market data.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// MarketDataProvider supplies prices for marking open positions. Prices are
// plain floats in the journal currency; only the caller knows which that is.
//
// Providers fail per ticker. Callers decide the fallback, typically the
// position's average entry price.
type MarketDataProvider interface {
	CurrentPrice(ctx context.Context, ticker string) (float64, error)
	HistoricalSeries(ctx context.Context, ticker string, from, to time.Time) ([]Candle, error)
}

// Price lookups run in small concurrent batches with a pause in between, to
// stay polite with free market data endpoints.
const (
	priceBatchSize  = 3
	priceBatchPause = 200 * time.Millisecond
)

// FetchPrices resolves current prices for the given tickers. Lookups run in
// batches of three concurrent requests separated by a short pause. Failed
// tickers are left out of the map and their errors joined into the returned
// error, so a partial map and a non-nil error can arrive together.
func FetchPrices(ctx context.Context, p MarketDataProvider, tickers []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(tickers))
	var mu sync.Mutex
	var errs []error

	for start := 0; start < len(tickers); start += priceBatchSize {
		batch := tickers[start:min(start+priceBatchSize, len(tickers))]

		var wg sync.WaitGroup
		for _, ticker := range batch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := p.CurrentPrice(ctx, ticker)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				prices[ticker] = v
			}()
		}
		wg.Wait()

		if start+priceBatchSize < len(tickers) {
			select {
			case <-ctx.Done():
				return prices, errors.Join(append(errs, ctx.Err())...)
			case <-time.After(priceBatchPause):
			}
		}
	}
	return prices, errors.Join(errs...)
}
