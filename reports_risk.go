package tradelab

// riskMetrics fills the risk-adjusted block. The series is the chronological
// percentage returns of the closed lots.
func (a *Analyzer) riskMetrics(r *PerformanceReport, returns []float64) {
	m := mean(returns)

	vol := popStdDev(returns)
	r.Volatility = Percent(vol)

	var below []float64
	for _, x := range returns {
		if x < m {
			below = append(below, x)
		}
	}
	down := popStdDev(below)
	r.DownsideDeviation = Percent(down)

	dd := maxDrawdown(returns)
	r.MaxDrawdown = Percent(dd)

	r.SharpeRatio = ratio(m-a.RiskFreeRate, vol)
	r.SortinoRatio = ratio(m-a.RiskFreeRate, down)
	r.CalmarRatio = ratio(m, dd/100)
	r.InformationRatio = ratio(m-a.BenchmarkReturn, vol)
}

// maxDrawdown walks the cumulative sum of the return series and measures the
// deepest fall from a running peak. The walk starts at zero and the origin
// counts as a peak, so a history that only loses money draws down by its
// whole decline. The result is never negative.
func maxDrawdown(returns []float64) float64 {
	var cumulative, peak, worst float64
	for _, x := range returns {
		cumulative += x
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > worst {
			worst = dd
		}
	}
	return worst
}
