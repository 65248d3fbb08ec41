package calculator

import "math"

// RSISeries computes the relative strength index over a simple rolling
// average of gains and losses. The first `period` positions are NaN. When a
// window has losses but no gains the result is 0; gains but no losses, 100;
// neither, NaN (flat window).
func RSISeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	for i := period; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window, RSI undefined
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// LatestRSI returns the last defined RSI value, or NaN when the series
// never warmed up.
func LatestRSI(closes []float64, period int) float64 {
	series := RSISeries(closes, period)
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i]
		}
	}
	return math.NaN()
}
