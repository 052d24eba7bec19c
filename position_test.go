package tradelab

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestAggregatePositions(t *testing.T) {
	a1 := openLot("AAPL", Long, day(2025, time.January, 10), 100, 10)
	a1.Fees = USD(2)
	a2 := openLot("AAPL", Long, day(2025, time.February, 1), 110, 5)
	a2.Fees = USD(3)
	lots := []Lot{
		openLot("MSFT", Long, day(2025, time.January, 5), 400, 2),
		a1,
		long("NVDA", day(2025, time.January, 1), 100, 1, 0, day(2025, time.January, 2), 110), // closed, ignored
		a2,
	}

	positions, err := AggregatePositions(lots)
	if err != nil {
		t.Fatalf("AggregatePositions() error = %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	// Sorted by ticker.
	if positions[0].Ticker != "AAPL" || positions[1].Ticker != "MSFT" {
		t.Fatalf("tickers = %s, %s, want AAPL, MSFT", positions[0].Ticker, positions[1].Ticker)
	}

	aapl := positions[0]
	if !aapl.TotalQuantity.Equal(Q(15)) {
		t.Errorf("TotalQuantity = %s, want 15", aapl.TotalQuantity)
	}
	if want := USD(1550); !aapl.TotalCost.Equal(want) {
		t.Errorf("TotalCost = %s, want %s", aapl.TotalCost, want)
	}
	if want := USD(5); !aapl.TotalFees.Equal(want) {
		t.Errorf("TotalFees = %s, want %s", aapl.TotalFees, want)
	}
	if aapl.Lots != 2 {
		t.Errorf("Lots = %d, want 2", aapl.Lots)
	}
	// 1550 / 15 is periodic, compare as float.
	if got := aapl.AverageEntryPrice.AsFloat(); math.Abs(got-103.3333333333) > 1e-6 {
		t.Errorf("AverageEntryPrice = %v, want 103.33...", got)
	}
}

// Folding lots one by one must land on the same position as aggregating the
// whole slice at once.
func TestPosition_AddLotIncremental(t *testing.T) {
	lots := []Lot{
		openLot("AAPL", Long, day(2025, time.January, 10), 100, 10),
		openLot("AAPL", Long, day(2025, time.February, 1), 110, 5),
		openLot("AAPL", Long, day(2025, time.March, 1), 95, 3),
	}

	var p Position
	for _, l := range lots {
		var err error
		if p, err = p.AddLot(l); err != nil {
			t.Fatalf("AddLot() error = %v", err)
		}
	}

	positions, err := AggregatePositions(lots)
	if err != nil {
		t.Fatalf("AggregatePositions() error = %v", err)
	}
	full := positions[0]
	if !p.TotalQuantity.Equal(full.TotalQuantity) || !p.TotalCost.Equal(full.TotalCost) ||
		!p.AverageEntryPrice.Equal(full.AverageEntryPrice) || p.Lots != full.Lots {
		t.Errorf("incremental fold %+v != full aggregation %+v", p, full)
	}
}

func TestAggregatePositions_MixedDirection(t *testing.T) {
	lots := []Lot{
		openLot("AAPL", Long, day(2025, time.January, 10), 100, 10),
		openLot("AAPL", Short, day(2025, time.February, 1), 110, 5),
	}
	_, err := AggregatePositions(lots)
	var mixed *MixedDirectionError
	if !errors.As(err, &mixed) {
		t.Fatalf("AggregatePositions() error = %v, want *MixedDirectionError", err)
	}
	if mixed.Ticker != "AAPL" || mixed.Have != Long || mixed.Got != Short {
		t.Errorf("error = %v, want long position meeting short lot on AAPL", mixed)
	}
}

func TestPosition_AddLot_Rejects(t *testing.T) {
	p, err := Position{}.AddLot(openLot("AAPL", Long, day(2025, time.January, 10), 100, 10))
	if err != nil {
		t.Fatalf("AddLot() error = %v", err)
	}

	closed := long("AAPL", day(2025, time.January, 1), 100, 1, 0, day(2025, time.January, 2), 110)
	if _, err := p.AddLot(closed); err == nil {
		t.Error("AddLot() accepted a closed lot")
	}
	if _, err := p.AddLot(openLot("MSFT", Long, day(2025, time.January, 10), 400, 1)); err == nil {
		t.Error("AddLot() accepted a lot from another ticker")
	}
}

func TestPosition_WithPrice(t *testing.T) {
	lots := []Lot{
		openLot("AAPL", Long, day(2025, time.January, 10), 100, 10),
		openLot("AAPL", Long, day(2025, time.February, 1), 110, 5),
	}
	positions, err := AggregatePositions(lots)
	if err != nil {
		t.Fatalf("AggregatePositions() error = %v", err)
	}

	v := positions[0].WithPrice(USD(110))
	if want := USD(1650); !v.CurrentValue.Equal(want) {
		t.Errorf("CurrentValue = %s, want %s", v.CurrentValue, want)
	}
	if want := USD(100); !v.UnrealizedPnL.Equal(want) {
		t.Errorf("UnrealizedPnL = %s, want %s", v.UnrealizedPnL, want)
	}
	// 100 / 1550 * 100
	if want := Percent(6.4516); !v.UnrealizedPnLPct.Equal(want) {
		t.Errorf("UnrealizedPnLPct = %s, want %s", v.UnrealizedPnLPct, want)
	}
}

// A short position gains when the price drops below the average entry.
func TestPosition_WithPrice_Short(t *testing.T) {
	p, err := Position{}.AddLot(openLot("NVDA", Short, day(2025, time.March, 1), 150, 5))
	if err != nil {
		t.Fatalf("AddLot() error = %v", err)
	}

	v := p.WithPrice(USD(130))
	if want := USD(100); !v.UnrealizedPnL.Equal(want) {
		t.Errorf("UnrealizedPnL = %s, want %s", v.UnrealizedPnL, want)
	}
	if want := Percent(13.3333); !v.UnrealizedPnLPct.Equal(want) {
		t.Errorf("UnrealizedPnLPct = %s, want %s", v.UnrealizedPnLPct, want)
	}

	v = p.WithPrice(USD(160))
	if want := USD(-50); !v.UnrealizedPnL.Equal(want) {
		t.Errorf("UnrealizedPnL = %s, want %s", v.UnrealizedPnL, want)
	}
}
