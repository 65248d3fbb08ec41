package calculator

// EMA returns the exponential moving average with the given span, seeded
// from the first value (recursive form, no bias adjustment).
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDSeries returns the MACD line (12-period EMA minus 26-period EMA) and
// its 9-period EMA signal line, both aligned with the input.
func MACDSeries(closes []float64) (macd, signal []float64) {
	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = ema12[i] - ema26[i]
	}
	signal = EMA(macd, 9)
	return macd, signal
}
