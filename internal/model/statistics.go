package model

// Statistics holds the derived scalar summary for one price series.
// Immutable once computed. Values whose warm-up window never filled are NaN.
type Statistics struct {
	LatestClose   float64
	MinClose      float64
	MaxClose      float64
	MeanClose     float64
	PercentChange float64 // first close to last close, in percent
	AvgVolume     float64

	Volatility     float64 // sample std dev of daily returns
	AvgDailyReturn float64
	SharpeRatio    float64

	MACD       float64
	MACDSignal float64
	UpperBand  float64
	LowerBand  float64
	AvgBandGap float64
	RSI        float64
	ATR        float64
	AvgROC     float64
	LatestROC  float64
}

// IndicatorSeries carries per-bar indicator values aligned with the source
// bars. Entries are NaN until the indicator's warm-up window is filled.
type IndicatorSeries struct {
	SMA20      []float64
	UpperBand  []float64
	LowerBand  []float64
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	ROC        []float64
}
