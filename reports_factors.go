package tradelab

// factorMetrics fills the factor attribution block. These are deliberately
// coarse heuristics over the trade history itself, not a regression against
// market data: each factor is a spread of mean returns between a bucket and
// its complement, scaled from percentage points to a decimal fraction.
func (a *Analyzer) factorMetrics(r *PerformanceReport, views []LotView, returns []float64) {
	var longs, shorts []float64
	for i, v := range views {
		if v.Direction == Long {
			longs = append(longs, returns[i])
		} else {
			shorts = append(shorts, returns[i])
		}
	}
	r.MarketTiming = (mean(longs) - mean(shorts)) / 100

	r.StockSelection = (mean(returns) - a.BenchmarkReturn) / 100

	var tech, nonTech, large, nonLarge []float64
	for i, v := range views {
		c := a.Classifier.Classify(v.Ticker)
		if c.Sector == SectorTechnology {
			tech = append(tech, returns[i])
		} else {
			nonTech = append(nonTech, returns[i])
		}
		if c.SizeTier == SizeLarge {
			large = append(large, returns[i])
		} else {
			nonLarge = append(nonLarge, returns[i])
		}
	}
	r.SectorAllocation = (mean(tech) - mean(nonTech)) / 100
	r.SizeFactor = (mean(large) - mean(nonLarge)) / 100

	// short holding periods score as momentum trading, 30 days or more as none
	if hold := averageHoldingDays(views); hold < 30 {
		r.MomentumFactor = 1 - hold/30
	}
}
