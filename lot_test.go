package tradelab

import (
	"errors"
	"testing"
	"time"
)

func TestNewLotView_LongProfit(t *testing.T) {
	// 10 shares at 100, 10 of fees, sold at 120.
	l := long("AAPL", day(2025, time.January, 10), 100, 10, 10, day(2025, time.February, 10), 120)

	v, err := NewLotView(l, time.Time{})
	if err != nil {
		t.Fatalf("NewLotView() error = %v", err)
	}

	if want := USD(1000); !v.EntryValue.Equal(want) {
		t.Errorf("EntryValue = %s, want %s", v.EntryValue, want)
	}
	if want := USD(1200); !v.ExitValue.Equal(want) {
		t.Errorf("ExitValue = %s, want %s", v.ExitValue, want)
	}
	if want := USD(190); !v.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", v.ProfitLoss, want)
	}
	if want := Percent(19); !v.ProfitLossPct.Equal(want) {
		t.Errorf("ProfitLossPct = %s, want %s", v.ProfitLossPct, want)
	}
	if v.HoldingDays != 31 {
		t.Errorf("HoldingDays = %d, want 31", v.HoldingDays)
	}
	if v.Open {
		t.Error("Open = true for a closed lot")
	}
}

func TestNewLotView_ShortProfit(t *testing.T) {
	// A short gains when the price falls: entry 150, exit 130.
	l := short("NVDA", day(2025, time.March, 1), 150, 5, 5, day(2025, time.March, 15), 130)

	v, err := NewLotView(l, time.Time{})
	if err != nil {
		t.Fatalf("NewLotView() error = %v", err)
	}

	if want := USD(95); !v.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", v.ProfitLoss, want)
	}
	// 95 / 750 * 100
	if want := Percent(12.6666); !v.ProfitLossPct.Equal(want) {
		t.Errorf("ProfitLossPct = %s, want %s", v.ProfitLossPct, want)
	}
}

func TestNewLotView_ShortLoss(t *testing.T) {
	// A short loses when the price rises.
	l := short("NVDA", day(2025, time.March, 1), 150, 5, 5, day(2025, time.March, 15), 160)

	v, err := NewLotView(l, time.Time{})
	if err != nil {
		t.Fatalf("NewLotView() error = %v", err)
	}
	if want := USD(-55); !v.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %s, want %s", v.ProfitLoss, want)
	}
}

func TestNewLotView_OpenLot(t *testing.T) {
	l := Lot{
		Ticker:     "MSFT",
		Direction:  Long,
		EntryDate:  day(2025, time.January, 1),
		EntryPrice: USD(400),
		Quantity:   Q(2),
	}

	v, err := NewLotView(l, day(2025, time.January, 11))
	if err != nil {
		t.Fatalf("NewLotView() error = %v", err)
	}
	if !v.Open {
		t.Error("Open = false for an open lot")
	}
	if !v.ProfitLoss.IsZero() || v.ProfitLossPct != 0 {
		t.Errorf("open lot has profit figures: %s, %s", v.ProfitLoss, v.ProfitLossPct)
	}
	if v.HoldingDays != 10 {
		t.Errorf("HoldingDays = %d, want 10 (entry to now)", v.HoldingDays)
	}
}

func TestNewLotView_Invalid(t *testing.T) {
	valid := long("AAPL", day(2025, time.January, 10), 100, 10, 10, day(2025, time.February, 10), 120)

	tests := []struct {
		name   string
		mutate func(l Lot) Lot
	}{
		{"missing ticker", func(l Lot) Lot { l.Ticker = ""; return l }},
		{"zero quantity", func(l Lot) Lot { l.Quantity = Q(0); return l }},
		{"negative quantity", func(l Lot) Lot { l.Quantity = Q(-1); return l }},
		{"zero entry price", func(l Lot) Lot { l.EntryPrice = USD(0); return l }},
		{"negative fees", func(l Lot) Lot { l.Fees = USD(-1); return l }},
		{"fees currency mismatch", func(l Lot) Lot { l.Fees = EUR(1); return l }},
		{"exit date without price", func(l Lot) Lot { l.ExitPrice = Money{}; return l }},
		{"exit price without date", func(l Lot) Lot { l.ExitDate = time.Time{}; return l }},
		{"negative exit price", func(l Lot) Lot { l.ExitPrice = USD(-120); return l }},
		{"exit before entry", func(l Lot) Lot { l.ExitDate = day(2024, time.December, 31); return l }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLotView(tc.mutate(valid), time.Time{})
			var invalid *InvalidLotError
			if !errors.As(err, &invalid) {
				t.Fatalf("NewLotView() error = %v, want *InvalidLotError", err)
			}
		})
	}
}

func TestDaysBetween_RoundsUp(t *testing.T) {
	monday := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same instant", monday, 0},
		{"before", monday.Add(-time.Hour), 0},
		{"a few hours", monday.Add(3 * time.Hour), 1},
		{"next morning", monday.Add(21 * time.Hour), 1},
		{"exactly one day", monday.Add(24 * time.Hour), 1},
		{"one day and one hour", monday.Add(25 * time.Hour), 2},
		{"a week", monday.Add(7 * 24 * time.Hour), 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := daysBetween(monday, tc.to); got != tc.want {
				t.Errorf("daysBetween() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if d := must(ParseDirection("long")); d != Long {
		t.Errorf("ParseDirection(long) = %v", d)
	}
	if d := must(ParseDirection("short")); d != Short {
		t.Errorf("ParseDirection(short) = %v", d)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) did not fail")
	}
}
