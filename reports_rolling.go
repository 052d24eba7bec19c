package tradelab

import "time"

// RollingPeriod is one sliding window over the chronological trade series.
// Start and End are the entry dates of the first and last trade in the
// window.
type RollingPeriod struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Return      Percent   `json:"return"`
	Volatility  Percent   `json:"volatility"`
	Sharpe      float64   `json:"sharpe"`
	MaxDrawdown Percent   `json:"maxDrawdown"`
	Trades      int       `json:"trades"`
}

// rollingMetrics slides a window of w = min(10, n/3) trades, one step at a
// time, over the chronological series, producing n-w+1 periods. Fewer than
// three trades leave no room for a window, so Periods stays empty and
// Best/Worst stay zero.
func (a *Analyzer) rollingMetrics(r *PerformanceReport, views []LotView, returns []float64) {
	n := len(returns)
	w := n / 3
	if w > 10 {
		w = 10
	}
	if w < 1 {
		return
	}

	r.Periods = make([]RollingPeriod, 0, n-w+1)
	for i := 0; i+w <= n; i++ {
		win := returns[i : i+w]
		m := mean(win)
		vol := popStdDev(win)
		r.Periods = append(r.Periods, RollingPeriod{
			Start:       views[i].EntryDate,
			End:         views[i+w-1].EntryDate,
			Return:      Percent(m),
			Volatility:  Percent(vol),
			Sharpe:      ratio(m-a.RiskFreeRate, vol),
			MaxDrawdown: Percent(maxDrawdown(win)),
			Trades:      w,
		})
	}

	best, worst := 0, 0
	for i, p := range r.Periods {
		if p.Return > r.Periods[best].Return {
			best = i
		}
		if p.Return < r.Periods[worst].Return {
			worst = i
		}
	}
	r.BestPeriod = r.Periods[best]
	r.WorstPeriod = r.Periods[worst]
}
