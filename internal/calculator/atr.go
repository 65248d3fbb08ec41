package calculator

import (
	"math"

	"MarketScribe/internal/model"
)

// TrueRange returns the per-bar true range: the largest of high−low,
// |high−prevClose|, and |low−prevClose|. The first bar uses high−low only.
func TrueRange(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prev := bars[i-1].Close
			tr = math.Max(tr, math.Abs(b.High-prev))
			tr = math.Max(tr, math.Abs(b.Low-prev))
		}
		out[i] = tr
	}
	return out
}

// ATR returns the latest period-bar average true range, or NaN when fewer
// than period bars are available.
func ATR(bars []model.OHLCV, period int) float64 {
	if period <= 0 || len(bars) < period {
		return math.NaN()
	}
	means := RollingMean(TrueRange(bars), period)
	return means[len(means)-1]
}
