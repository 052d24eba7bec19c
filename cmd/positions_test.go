package cmd

import (
	"testing"
	"time"

	"github.com/etnz/tradelab"
)

func openLot(ticker string, price float64, quantity int) tradelab.Lot {
	return tradelab.Lot{
		Ticker:     ticker,
		Direction:  tradelab.Long,
		EntryDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EntryPrice: tradelab.M(price, "USD"),
		Quantity:   tradelab.Q(quantity),
	}
}

func TestMarkPositionsFallsBackToEntryPrice(t *testing.T) {
	positions, err := tradelab.AggregatePositions([]tradelab.Lot{
		openLot("AAPL", 100, 10),
		openLot("MSFT", 400, 5),
	})
	if err != nil {
		t.Fatalf("AggregatePositions() error: %v", err)
	}

	// Only AAPL resolves; MSFT must be marked at its average entry price.
	views, missing := markPositions(positions, map[string]float64{"AAPL": 110})

	if len(views) != 2 {
		t.Fatalf("markPositions() returned %d views, want 2", len(views))
	}
	if len(missing) != 1 || missing[0] != "MSFT" {
		t.Errorf("missing = %v, want [MSFT]", missing)
	}

	aapl, msft := views[0], views[1]
	if aapl.Ticker != "AAPL" {
		aapl, msft = msft, aapl
	}

	if want := tradelab.M(110, "USD"); !aapl.CurrentPrice.Equal(want) {
		t.Errorf("AAPL current price = %s, want %s", aapl.CurrentPrice, want)
	}
	if want := tradelab.M(100, "USD"); !aapl.UnrealizedPnL.Equal(want) {
		t.Errorf("AAPL unrealized P&L = %s, want %s", aapl.UnrealizedPnL, want)
	}

	if !msft.CurrentPrice.Equal(msft.AverageEntryPrice) {
		t.Errorf("MSFT current price = %s, want average entry %s", msft.CurrentPrice, msft.AverageEntryPrice)
	}
	if !msft.UnrealizedPnL.IsZero() {
		t.Errorf("MSFT unrealized P&L = %s, want zero at entry price", msft.UnrealizedPnL)
	}
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2025-06-30")
	if err != nil {
		t.Fatalf("parseDay() error: %v", err)
	}
	if want := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("parseDay() = %v, want %v", day, want)
	}

	if _, err := parseDay("30/06/2025"); err == nil {
		t.Error("parseDay() accepted a non ISO date")
	}

	today, err := parseDay("")
	if err != nil {
		t.Fatalf("parseDay(\"\") error: %v", err)
	}
	if now := time.Now().UTC(); now.Sub(today) > 24*time.Hour || today.After(now) {
		t.Errorf("parseDay(\"\") = %v, not today", today)
	}
}
