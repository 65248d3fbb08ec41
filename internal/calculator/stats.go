package calculator

import (
	"errors"
	"math"

	"MarketScribe/internal/model"
)

// SMA computes the simple moving average of the given values over the last period.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// CloseStats returns the minimum, maximum, and mean of the close column.
func CloseStats(bars []model.OHLCV) (minClose, maxClose, meanClose float64, err error) {
	if len(bars) == 0 {
		return 0, 0, 0, errors.New("no bars provided")
	}
	minClose = math.Inf(1)
	maxClose = math.Inf(-1)
	sum := 0.0
	for _, b := range bars {
		if b.Close < minClose {
			minClose = b.Close
		}
		if b.Close > maxClose {
			maxClose = b.Close
		}
		sum += b.Close
	}
	return minClose, maxClose, sum / float64(len(bars)), nil
}

// PercentChange returns the change from the first to the last value, in percent.
func PercentChange(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, errors.New("need at least two values for percent change")
	}
	first, last := values[0], values[len(values)-1]
	if first == 0 {
		return 0, errors.New("first value is zero, percent change undefined")
	}
	return (last - first) / first * 100, nil
}

// AvgVolume returns the mean traded volume across all bars.
func AvgVolume(bars []model.OHLCV) float64 {
	if len(bars) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}

// RollingMean computes a trailing window mean for every position.
// Positions before the window fills are NaN. NaN inputs poison their window.
func RollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RollingStd computes a trailing window sample standard deviation for every
// position, with the same NaN semantics as RollingMean.
func RollingStd(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 1 || len(values) < period {
		return out
	}
	means := RollingMean(values, period)
	for i := period - 1; i < len(values); i++ {
		if math.IsNaN(means[i]) {
			continue
		}
		ss := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - means[i]
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

// NaNMean returns the mean of the non-NaN values, or NaN if there are none.
func NaNMean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
