package tradelab

import (
	"sort"
	"time"
)

// Default reference rates, in percentage points. They are annualized values
// compared directly against the per-lot return series, which uses the same
// unit.
const (
	DefaultRiskFreeRate    = 2.0
	DefaultBenchmarkReturn = 10.0
)

// Analyzer derives a PerformanceReport from closed lots. The zero value is
// not usable, call NewAnalyzer and override fields as needed.
type Analyzer struct {
	// RiskFreeRate and BenchmarkReturn are expressed in percentage points,
	// the unit of the lot return series they are subtracted from.
	RiskFreeRate    float64
	BenchmarkReturn float64
	Classifier      SecurityClassifier
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		RiskFreeRate:    DefaultRiskFreeRate,
		BenchmarkReturn: DefaultBenchmarkReturn,
		Classifier:      DefaultClassifier(),
	}
}

// PerformanceReport is the full set of portfolio metrics over a trade
// history. It is a pure value object: recomputed from lots, never stored.
type PerformanceReport struct {
	// basic
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	TotalPnL      Money   `json:"totalPnL"`
	WinRate       float64 `json:"winRate"`
	AverageReturn Percent `json:"averageReturn"`
	AverageWin    Money   `json:"averageWin"`
	AverageLoss   Money   `json:"averageLoss"`

	// risk adjusted
	Volatility        Percent `json:"volatility"`
	DownsideDeviation Percent `json:"downsideDeviation"`
	MaxDrawdown       Percent `json:"maxDrawdown"`
	SharpeRatio       float64 `json:"sharpeRatio"`
	SortinoRatio      float64 `json:"sortinoRatio"`
	CalmarRatio       float64 `json:"calmarRatio"`
	InformationRatio  float64 `json:"informationRatio"`

	// factor
	MarketTiming     float64 `json:"marketTiming"`
	StockSelection   float64 `json:"stockSelection"`
	SectorAllocation float64 `json:"sectorAllocation"`
	SizeFactor       float64 `json:"sizeFactor"`
	MomentumFactor   float64 `json:"momentumFactor"`

	// rolling
	Periods     []RollingPeriod `json:"periods"`
	BestPeriod  RollingPeriod   `json:"bestPeriod"`
	WorstPeriod RollingPeriod   `json:"worstPeriod"`

	// behavioral
	AverageHoldingPeriod      float64 `json:"averageHoldingPeriod"`
	TradeFrequency            float64 `json:"tradeFrequency"`
	PositionSizingConsistency float64 `json:"positionSizingConsistency"`
	RiskTolerance             float64 `json:"riskTolerance"`
	EmotionalControl          float64 `json:"emotionalControl"`

	// benchmark comparison
	ExcessReturn  Percent `json:"excessReturn"`
	TrackingError Percent `json:"trackingError"`
	Beta          float64 `json:"beta"`
	Alpha         Percent `json:"alpha"`
}

// PerformanceReport computes every metric block over the closed lots of the
// given history. Open lots are ignored. An empty history is not an error: it
// yields the zero report.
func (a *Analyzer) PerformanceReport(lots []Lot) (*PerformanceReport, error) {
	views, returns, err := closedViews(lots)
	if err != nil {
		return nil, err
	}
	r := &PerformanceReport{Periods: []RollingPeriod{}}
	if len(views) == 0 {
		return r, nil
	}
	basicMetrics(r, views, returns)
	a.riskMetrics(r, returns)
	a.factorMetrics(r, views, returns)
	a.rollingMetrics(r, views, returns)
	behavioralMetrics(r, views, returns)
	a.benchmarkMetrics(r, returns)
	return r, nil
}

// closedViews computes the views of the closed lots, ordered by entry date
// ascending. The sort is stable so same-day entries keep their original
// order. The returned series holds the percentage returns in the same order.
func closedViews(lots []Lot) ([]LotView, []float64, error) {
	now := time.Now()
	views := make([]LotView, 0, len(lots))
	for _, l := range lots {
		if !l.Closed() {
			continue
		}
		v, err := NewLotView(l, now)
		if err != nil {
			return nil, nil, err
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].EntryDate.Before(views[j].EntryDate)
	})
	returns := make([]float64, len(views))
	for i, v := range views {
		returns[i] = float64(v.ProfitLossPct)
	}
	return views, returns, nil
}

func basicMetrics(r *PerformanceReport, views []LotView, returns []float64) {
	r.TotalTrades = len(views)
	var total, winSum, lossSum Money
	for _, v := range views {
		total = total.Add(v.ProfitLoss)
		switch {
		case v.ProfitLoss.IsPositive():
			r.WinningTrades++
			winSum = winSum.Add(v.ProfitLoss)
		case v.ProfitLoss.IsNegative():
			r.LosingTrades++
			lossSum = lossSum.Add(v.ProfitLoss)
		}
	}
	r.TotalPnL = total
	r.WinRate = ratio(float64(r.WinningTrades), float64(r.TotalTrades))
	r.AverageReturn = Percent(mean(returns))
	r.AverageWin = winSum.Div(Q(r.WinningTrades))
	r.AverageLoss = lossSum.Div(Q(r.LosingTrades))
}
