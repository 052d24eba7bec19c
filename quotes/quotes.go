// Package quotes fetches market prices from the Yahoo Finance chart API.
//
// It implements tradelab.MarketDataProvider and is meant to be wrapped in a
// tradelab.CachedProvider by callers that hit it repeatedly.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/etnz/tradelab"
)

// DefaultBase is the public Yahoo Finance chart endpoint.
const DefaultBase = "https://query1.finance.yahoo.com"

// Client queries the Yahoo Finance chart API.
type Client struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a client against the public Yahoo endpoint.
func NewClient(log zerolog.Logger) *Client {
	return NewClientAt(DefaultBase, log)
}

// NewClientAt creates a client against a custom base URL, for tests.
func NewClientAt(base string, log zerolog.Logger) *Client {
	return &Client{
		base: base,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "quotes").Logger(),
	}
}

var _ tradelab.MarketDataProvider = (*Client)(nil)

// CurrentPrice returns the latest regular market price for the ticker.
func (c *Client) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.base, url.PathEscape(ticker))

	var jobj any
	if err := c.getJSON(ctx, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", ticker, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes this API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("cannot read price for %q: neither a float nor a string", ticker)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read price for %q: invalid string %q: %w", ticker, sval, err)
		}
	}
	if val == 0 {
		return 0, fmt.Errorf("no price for %q", ticker)
	}
	c.log.Debug().Str("ticker", ticker).Float64("price", val).Msg("fetched current price")
	return val, nil
}

// HistoricalSeries returns daily candles for the ticker between from and to
// inclusive, oldest first.
func (c *Client) HistoricalSeries(ctx context.Context, ticker string, from, to time.Time) ([]tradelab.Candle, error) {
	// https://query1.finance.yahoo.com/v8/finance/chart/AAPL?period1=...&period2=...&interval=1d
	// {
	//   "chart": {
	//     "result": [{
	//       "timestamp": [1714657800, ...],
	//       "indicators": { "quote": [{ "open": [...], "high": [...], "low": [...], "close": [...], "volume": [...] }] }
	//     }],
	//     "error": null
	//   }
	// }
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.base, url.PathEscape(ticker), from.Unix(), to.Unix())

	// that's the payload
	type quote struct {
		Open   []float64 `json:"open"`
		High   []float64 `json:"high"`
		Low    []float64 `json:"low"`
		Close  []float64 `json:"close"`
		Volume []int64   `json:"volume"`
	}
	var content struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []quote `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}

	if err := c.getJSON(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}
	if e := content.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart error for %q: %s: %s", ticker, e.Code, e.Description)
	}
	if len(content.Chart.Result) == 0 || len(content.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %q", ticker)
	}

	result := content.Chart.Result[0]
	q := result.Indicators.Quote[0]

	n := min(len(result.Timestamp), len(q.Close))
	candles := make([]tradelab.Candle, 0, n)
	for i := 0; i < n; i++ {
		if q.Close[i] == 0 {
			// null quotes decode as zero, skip them
			continue
		}
		candles = append(candles, tradelab.Candle{
			Date:   time.Unix(result.Timestamp[i], 0).UTC(),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  q.Close[i],
			Volume: at(q.Volume, i),
		})
	}
	c.log.Debug().Str("ticker", ticker).Int("candles", len(candles)).Msg("fetched historical series")
	return candles, nil
}

// at reads s[i], tolerating series shorter than the timestamp list.
func at[T int64 | float64](s []T, i int) T {
	if i < len(s) {
		return s[i]
	}
	var zero T
	return zero
}

// getJSON performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; tradelab)")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
