package calculator

import "math"

// ROCSeries returns the n-period price rate of change in percent:
// (close − close[n ago]) / close[n ago] × 100. The first n positions are NaN.
func ROCSeries(closes []float64, n int) []float64 {
	out := nanSlice(len(closes))
	if n <= 0 {
		return out
	}
	for i := n; i < len(closes); i++ {
		prev := closes[i-n]
		if prev == 0 {
			continue
		}
		out[i] = (closes[i] - prev) / prev * 100
	}
	return out
}

// LatestROC returns the final ROC value, NaN when the series never warmed up.
func LatestROC(closes []float64, n int) float64 {
	series := ROCSeries(closes, n)
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
