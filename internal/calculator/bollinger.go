package calculator

import "math"

// Bollinger returns the period moving average of the closes together with
// bands width standard deviations above and below it. Positions before the
// window fills are NaN.
func Bollinger(closes []float64, period int, width float64) (middle, upper, lower []float64) {
	middle = RollingMean(closes, period)
	std := RollingStd(closes, period)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		if math.IsNaN(middle[i]) || math.IsNaN(std[i]) {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		upper[i] = middle[i] + std[i]*width
		lower[i] = middle[i] - std[i]*width
	}
	return middle, upper, lower
}

// BandGap returns the mean distance between the upper and lower bands over
// the positions where both are defined.
func BandGap(upper, lower []float64) float64 {
	gaps := make([]float64, len(upper))
	for i := range upper {
		gaps[i] = upper[i] - lower[i]
	}
	return NaNMean(gaps)
}
