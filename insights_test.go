package tradelab

import "testing"

func TestGenerateInsights_NoTrades(t *testing.T) {
	if got := GenerateInsights(nil); got != nil {
		t.Errorf("GenerateInsights(nil) = %v, want nil", got)
	}
	if got := GenerateInsights(&PerformanceReport{}); got != nil {
		t.Errorf("GenerateInsights(empty report) = %v, want nil", got)
	}
}

// A report sitting inside every dead zone triggers no rule.
func TestGenerateInsights_Quiet(t *testing.T) {
	r := &PerformanceReport{
		TotalTrades:      5,
		WinRate:          0.5,
		SharpeRatio:      0.75,
		EmotionalControl: 0.5,
		MarketTiming:     0.05,
	}
	if got := GenerateInsights(r); len(got) != 0 {
		t.Errorf("got %d insights, want none", len(got))
	}
}

func TestGenerateInsights_AllRules(t *testing.T) {
	r := &PerformanceReport{
		TotalTrades:      10,
		WinningTrades:    7,
		WinRate:          0.7,
		SharpeRatio:      1.5,
		EmotionalControl: 0.9,
		MarketTiming:     0.2,
	}

	insights := GenerateInsights(r)
	if len(insights) != 4 {
		t.Fatalf("got %d insights, want 4", len(insights))
	}

	// Rules fire in a fixed order.
	wantTypes := []string{"performance", "risk", "behavioral", "factor"}
	for i, w := range wantTypes {
		if insights[i].Type != w {
			t.Errorf("insights[%d].Type = %s, want %s", i, insights[i].Type, w)
		}
	}

	perf := insights[0]
	if perf.Title != "High win rate" || perf.Impact != ImpactPositive || perf.Confidence != 85 {
		t.Errorf("performance insight = %+v", perf)
	}
	if perf.Metrics["winRate"] != 0.7 {
		t.Errorf("winRate metric = %v, want 0.7", perf.Metrics["winRate"])
	}

	risk := insights[1]
	if risk.Title != "Strong risk-adjusted returns" || risk.Confidence != 90 {
		t.Errorf("risk insight = %+v", risk)
	}

	behavioral := insights[2]
	if behavioral.Title != "Consistent execution" || behavioral.Confidence != 80 {
		t.Errorf("behavioral insight = %+v", behavioral)
	}
	// The positive behavioral reading carries no recommendation.
	if behavioral.Recommendation != "" {
		t.Errorf("Recommendation = %q, want none", behavioral.Recommendation)
	}

	factor := insights[3]
	if factor.Title != "Effective direction picking" || factor.Confidence != 65 {
		t.Errorf("factor insight = %+v", factor)
	}
}

func TestGenerateInsights_NegativeReadings(t *testing.T) {
	r := &PerformanceReport{
		TotalTrades:      10,
		WinningTrades:    3,
		WinRate:          0.3,
		SharpeRatio:      0.2,
		EmotionalControl: 0.1,
	}

	insights := GenerateInsights(r)
	if len(insights) != 3 {
		t.Fatalf("got %d insights, want 3", len(insights))
	}
	wantTitles := []string{"Low win rate", "Weak risk-adjusted returns", "Erratic trade outcomes"}
	for i, w := range wantTitles {
		if insights[i].Title != w {
			t.Errorf("insights[%d].Title = %q, want %q", i, insights[i].Title, w)
		}
		if insights[i].Impact != ImpactNegative {
			t.Errorf("insights[%d].Impact = %s, want negative", i, insights[i].Impact)
		}
		if insights[i].Recommendation == "" {
			t.Errorf("insights[%d] has no recommendation", i)
		}
	}
	wantConfidence := []int{80, 75, 70}
	for i, w := range wantConfidence {
		if insights[i].Confidence != w {
			t.Errorf("insights[%d].Confidence = %d, want %d", i, insights[i].Confidence, w)
		}
	}
}
