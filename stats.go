package tradelab

import "gonum.org/v1/gonum/stat"

// Statistic helpers over plain float64 series. An empty series yields 0 so
// aggregate metrics degrade to zero instead of NaN.

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStdDev is the population standard deviation. Metrics treat the trade
// history as the whole population, not a sample of one.
func popStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

// ratio divides, guarding the zero denominator to 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
