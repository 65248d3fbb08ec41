package calculator

import (
	"errors"
	"math"
)

// DailyReturns returns the bar-over-bar fractional change of the values.
// The result has len(values)-1 entries.
func DailyReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}

// Volatility returns the sample standard deviation of the returns.
func Volatility(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return 0, errors.New("need at least two returns for volatility")
	}
	mean := NaNMean(returns)
	ss, n := 0.0, 0
	for _, r := range returns {
		if math.IsNaN(r) {
			continue
		}
		d := r - mean
		ss += d * d
		n++
	}
	if n < 2 {
		return 0, errors.New("need at least two returns for volatility")
	}
	return math.Sqrt(ss / float64(n-1)), nil
}

// SharpeRatio annualizes the mean return by the actual number of trading
// days, assuming a zero risk-free rate. Zero volatility yields 0.
func SharpeRatio(avgReturn, volatility float64, tradingDays int) float64 {
	if volatility == 0 || math.IsNaN(volatility) {
		return 0
	}
	return avgReturn / volatility * math.Sqrt(float64(tradingDays))
}
