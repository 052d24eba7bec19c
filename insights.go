package tradelab

import "fmt"

// Impact qualifies the effect an insight describes.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Insight is a human readable reading of one metric pattern. Confidence is a
// fixed per-rule score between 0 and 100; it does not vary with the data.
type Insight struct {
	Type           string             `json:"type"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Impact         Impact             `json:"impact"`
	Confidence     int                `json:"confidence"`
	Recommendation string             `json:"recommendation,omitempty"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

// GenerateInsights maps a report to insights through a fixed set of
// threshold rules, emitted in rule order. A report with no trades yields
// none: there is no behavior to read.
func GenerateInsights(r *PerformanceReport) []Insight {
	if r == nil || r.TotalTrades == 0 {
		return nil
	}
	var insights []Insight

	if r.WinRate > 0.6 {
		insights = append(insights, Insight{
			Type:           "performance",
			Title:          "High win rate",
			Description:    fmt.Sprintf("%d of %d closed trades were profitable (%.0f%% win rate).", r.WinningTrades, r.TotalTrades, r.WinRate*100),
			Impact:         ImpactPositive,
			Confidence:     85,
			Recommendation: "The entry selection works; protect it by keeping position sizes steady.",
			Metrics:        map[string]float64{"winRate": r.WinRate},
		})
	} else if r.WinRate < 0.4 {
		insights = append(insights, Insight{
			Type:           "performance",
			Title:          "Low win rate",
			Description:    fmt.Sprintf("Only %d of %d closed trades were profitable (%.0f%% win rate).", r.WinningTrades, r.TotalTrades, r.WinRate*100),
			Impact:         ImpactNegative,
			Confidence:     80,
			Recommendation: "Review the entry criteria before adding size; a low hit rate needs large winners to break even.",
			Metrics:        map[string]float64{"winRate": r.WinRate},
		})
	}

	if r.SharpeRatio > 1.0 {
		insights = append(insights, Insight{
			Type:           "risk",
			Title:          "Strong risk-adjusted returns",
			Description:    fmt.Sprintf("A Sharpe ratio of %.2f means returns comfortably pay for their volatility.", r.SharpeRatio),
			Impact:         ImpactPositive,
			Confidence:     90,
			Recommendation: "Current risk sizing is adequate for this strategy.",
			Metrics:        map[string]float64{"sharpeRatio": r.SharpeRatio, "volatility": float64(r.Volatility)},
		})
	} else if r.SharpeRatio < 0.5 {
		insights = append(insights, Insight{
			Type:           "risk",
			Title:          "Weak risk-adjusted returns",
			Description:    fmt.Sprintf("A Sharpe ratio of %.2f means volatility eats most of the return.", r.SharpeRatio),
			Impact:         ImpactNegative,
			Confidence:     75,
			Recommendation: "Reduce position size or cut losing trades earlier to bring volatility down.",
			Metrics:        map[string]float64{"sharpeRatio": r.SharpeRatio, "volatility": float64(r.Volatility)},
		})
	}

	if r.EmotionalControl > 0.7 {
		insights = append(insights, Insight{
			Type:        "behavioral",
			Title:       "Consistent execution",
			Description: fmt.Sprintf("Returns cluster tightly around their mean (control score %.2f), a sign of disciplined, plan-driven exits.", r.EmotionalControl),
			Impact:      ImpactPositive,
			Confidence:  80,
			Metrics:     map[string]float64{"emotionalControl": r.EmotionalControl},
		})
	} else if r.EmotionalControl < 0.3 {
		insights = append(insights, Insight{
			Type:           "behavioral",
			Title:          "Erratic trade outcomes",
			Description:    fmt.Sprintf("Trade results swing widely around their mean (control score %.2f).", r.EmotionalControl),
			Impact:         ImpactNegative,
			Confidence:     70,
			Recommendation: "Define exit rules before entering and write them in the lot memo; improvised exits show up as scatter.",
			Metrics:        map[string]float64{"emotionalControl": r.EmotionalControl},
		})
	}

	if r.MarketTiming > 0.1 {
		insights = append(insights, Insight{
			Type:        "factor",
			Title:       "Effective direction picking",
			Description: fmt.Sprintf("Long picks outperform short picks by %.1f percentage points on average.", r.MarketTiming*100),
			Impact:      ImpactPositive,
			Confidence:  65,
			Metrics:     map[string]float64{"marketTiming": r.MarketTiming},
		})
	}

	return insights
}
