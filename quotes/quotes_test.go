package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"regularMarketPrice": %s},
      "timestamp": [1714657800, 1714744200, 1714830600],
      "indicators": {"quote": [{
        "open":   [182.35, 184.10, null],
        "high":   [184.20, 186.00, null],
        "low":    [181.90, 183.70, null],
        "close":  [183.38, 185.04, null],
        "volume": [50130000, 47290000, null]
      }]}
    }],
    "error": null
  }
}`

func newTestServer(t *testing.T, price string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, chartPayload, price)
	}))
	t.Cleanup(srv.Close)
	return NewClientAt(srv.URL, zerolog.Nop())
}

func TestClient_CurrentPrice(t *testing.T) {
	c := newTestServer(t, "185.04")

	got, err := c.CurrentPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("CurrentPrice() error = %v", err)
	}
	if got != 185.04 {
		t.Errorf("CurrentPrice() = %v, want 185.04", got)
	}
}

func TestClient_CurrentPrice_StringValue(t *testing.T) {
	// The API occasionally quotes the price, with a comma decimal separator.
	c := newTestServer(t, `"185,04"`)

	got, err := c.CurrentPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("CurrentPrice() error = %v", err)
	}
	if got != 185.04 {
		t.Errorf("CurrentPrice() = %v, want 185.04", got)
	}
}

func TestClient_CurrentPrice_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()
	c := NewClientAt(srv.URL, zerolog.Nop())

	if _, err := c.CurrentPrice(context.Background(), "NOPE"); err == nil {
		t.Fatal("CurrentPrice() expected error on 404, got nil")
	}
}

func TestClient_HistoricalSeries(t *testing.T) {
	c := newTestServer(t, "185.04")

	from := time.Unix(1714657800, 0)
	to := time.Unix(1714830600, 0)
	candles, err := c.HistoricalSeries(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("HistoricalSeries() error = %v", err)
	}

	// The third day has null quotes and must be dropped.
	if len(candles) != 2 {
		t.Fatalf("HistoricalSeries() returned %d candles, want 2", len(candles))
	}
	if candles[0].Close != 183.38 {
		t.Errorf("candles[0].Close = %v, want 183.38", candles[0].Close)
	}
	if candles[1].Volume != 47290000 {
		t.Errorf("candles[1].Volume = %v, want 47290000", candles[1].Volume)
	}
	if !candles[0].Date.Before(candles[1].Date) {
		t.Errorf("candles are not in chronological order: %v, %v", candles[0].Date, candles[1].Date)
	}
}

func TestClient_HistoricalSeries_ChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()
	c := NewClientAt(srv.URL, zerolog.Nop())

	_, err := c.HistoricalSeries(context.Background(), "GONE", time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("HistoricalSeries() expected error, got nil")
	}
}
