package tradelab

import "math"

// behavioralMetrics fills the behavioral block: bounded scores derived from
// the trading pattern rather than from returns alone.
func behavioralMetrics(r *PerformanceReport, views []LotView, returns []float64) {
	r.AverageHoldingPeriod = averageHoldingDays(views)

	spanDays := views[len(views)-1].EntryDate.Sub(views[0].EntryDate).Hours() / 24
	r.TradeFrequency = ratio(float64(len(views)), spanDays/30)

	sizes := make([]float64, len(views))
	for i, v := range views {
		sizes[i] = v.EntryValue.AsFloat()
	}
	r.PositionSizingConsistency = math.Max(0, 1-ratio(popStdDev(sizes), mean(sizes)))

	r.RiskTolerance = math.Min(1, ratio(r.AverageLoss.Abs().AsFloat(), r.AverageWin.AsFloat()))

	r.EmotionalControl = math.Max(0, 1-returnScatter(returns))
}

// returnScatter measures how dispersed the returns are relative to their
// mean, capped to [0, 1]. Perfectly consistent returns scatter 0; a zero
// mean with any dispersion saturates to 1.
func returnScatter(returns []float64) float64 {
	sd := popStdDev(returns)
	if sd == 0 {
		return 0
	}
	m := math.Abs(mean(returns))
	if m == 0 {
		return 1
	}
	return math.Min(1, sd/m)
}

func averageHoldingDays(views []LotView) float64 {
	if len(views) == 0 {
		return 0
	}
	var sum float64
	for _, v := range views {
		sum += float64(v.HoldingDays)
	}
	return sum / float64(len(views))
}
