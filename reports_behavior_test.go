package tradelab

import (
	"math"
	"testing"
	"time"
)

func TestReturnScatter(t *testing.T) {
	tests := []struct {
		name    string
		returns []float64
		want    float64
	}{
		{"no dispersion", []float64{10, 10, 10}, 0},
		{"empty", nil, 0},
		// Dispersion around a zero mean saturates the scatter.
		{"zero mean", []float64{10, -10}, 1},
		{"small dispersion", []float64{9, 11}, 0.1},
		{"large dispersion capped", []float64{100, -98}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := returnScatter(tc.returns); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("returnScatter(%v) = %v, want %v", tc.returns, got, tc.want)
			}
		})
	}
}

// A perfectly regular trader: same size, same return, ten day holds.
func TestBehavioralMetrics_Consistent(t *testing.T) {
	lots := []Lot{
		long("AAPL", day(2025, time.January, 1), 100, 10, 0, day(2025, time.January, 11), 110),
		long("AAPL", day(2025, time.January, 31), 100, 10, 0, day(2025, time.February, 10), 110),
		long("AAPL", day(2025, time.March, 2), 100, 10, 0, day(2025, time.March, 12), 110),
	}

	r, err := NewAnalyzer().PerformanceReport(lots)
	if err != nil {
		t.Fatalf("PerformanceReport() error = %v", err)
	}

	if math.Abs(r.AverageHoldingPeriod-10) > 1e-9 {
		t.Errorf("AverageHoldingPeriod = %v, want 10", r.AverageHoldingPeriod)
	}
	// Three trades over a sixty day span: 1.5 per thirty days.
	if math.Abs(r.TradeFrequency-1.5) > 1e-9 {
		t.Errorf("TradeFrequency = %v, want 1.5", r.TradeFrequency)
	}
	if math.Abs(r.PositionSizingConsistency-1) > 1e-9 {
		t.Errorf("PositionSizingConsistency = %v, want 1", r.PositionSizingConsistency)
	}
	if math.Abs(r.EmotionalControl-1) > 1e-9 {
		t.Errorf("EmotionalControl = %v, want 1", r.EmotionalControl)
	}
	// No losing trade on record.
	if r.RiskTolerance != 0 {
		t.Errorf("RiskTolerance = %v, want 0", r.RiskTolerance)
	}
}

func TestBehavioralMetrics_Erratic(t *testing.T) {
	// Returns +20% and -20%: zero mean with dispersion leaves no control
	// score. Average loss matches average win, so tolerance saturates.
	lots := []Lot{
		long("AAPL", day(2025, time.January, 1), 100, 10, 0, day(2025, time.January, 11), 120),
		long("AAPL", day(2025, time.February, 1), 100, 10, 0, day(2025, time.February, 11), 80),
	}

	r, err := NewAnalyzer().PerformanceReport(lots)
	if err != nil {
		t.Fatalf("PerformanceReport() error = %v", err)
	}

	if r.EmotionalControl != 0 {
		t.Errorf("EmotionalControl = %v, want 0", r.EmotionalControl)
	}
	if math.Abs(r.RiskTolerance-1) > 1e-9 {
		t.Errorf("RiskTolerance = %v, want 1", r.RiskTolerance)
	}
}

func TestAverageHoldingDays(t *testing.T) {
	if got := averageHoldingDays(nil); got != 0 {
		t.Errorf("averageHoldingDays(nil) = %v, want 0", got)
	}
}
