package tradelab

// benchmarkMetrics fills the benchmark comparison block. The benchmark is a
// constant reference return, so the tracking error is the dispersion of the
// return series around it.
func (a *Analyzer) benchmarkMetrics(r *PerformanceReport, returns []float64) {
	m := mean(returns)
	excess := m - a.BenchmarkReturn

	diffs := make([]float64, len(returns))
	for i, x := range returns {
		diffs[i] = x - a.BenchmarkReturn
	}

	r.ExcessReturn = Percent(excess)
	r.TrackingError = Percent(popStdDev(diffs))
	r.Beta = 0.7 * (float64(r.Volatility) / 15)
	r.Alpha = Percent(excess - r.Beta*(a.BenchmarkReturn-a.RiskFreeRate))
}
