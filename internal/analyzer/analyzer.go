// Package analyzer turns a fetched price series into summary statistics and
// per-bar indicator series. Analysis is pure: the same series always yields
// the same numbers.
package analyzer

import (
	"errors"
	"fmt"
	"math"

	"MarketScribe/internal/calculator"
	"MarketScribe/internal/model"
)

// ErrInsufficientData indicates the series has fewer than two records, so
// percentage change (and everything downstream) is undefined.
var ErrInsufficientData = errors.New("series has fewer than two records")

const (
	rsiPeriod  = 14
	atrPeriod  = 14
	rocPeriod  = 12
	bandPeriod = 20
	bandWidth  = 2.0
)

// Analyze computes the summary statistics and indicator series for one
// price series.
func Analyze(series *model.PriceSeries) (*model.Statistics, *model.IndicatorSeries, error) {
	if series == nil || len(series.Bars) < 2 {
		sym := "?"
		if series != nil {
			sym = series.Symbol
		}
		return nil, nil, fmt.Errorf("analyze %s: %w", sym, ErrInsufficientData)
	}

	bars := series.Bars
	closes := series.Closes()

	minClose, maxClose, meanClose, err := calculator.CloseStats(bars)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", series.Symbol, err)
	}
	pct, err := calculator.PercentChange(closes)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", series.Symbol, err)
	}

	returns := calculator.DailyReturns(closes)
	avgReturn := calculator.NaNMean(returns)
	vol, volErr := calculator.Volatility(returns)
	sharpe := 0.0
	if volErr != nil {
		vol = math.NaN()
	} else {
		sharpe = calculator.SharpeRatio(avgReturn, vol, len(bars))
	}

	macd, signal := calculator.MACDSeries(closes)
	sma20, upper, lower := calculator.Bollinger(closes, bandPeriod, bandWidth)
	rsi := calculator.RSISeries(closes, rsiPeriod)
	roc := calculator.ROCSeries(closes, rocPeriod)

	stats := &model.Statistics{
		LatestClose:   closes[len(closes)-1],
		MinClose:      minClose,
		MaxClose:      maxClose,
		MeanClose:     meanClose,
		PercentChange: pct,
		AvgVolume:     calculator.AvgVolume(bars),

		Volatility:     vol,
		AvgDailyReturn: avgReturn,
		SharpeRatio:    sharpe,

		MACD:       macd[len(macd)-1],
		MACDSignal: signal[len(signal)-1],
		UpperBand:  upper[len(upper)-1],
		LowerBand:  lower[len(lower)-1],
		AvgBandGap: calculator.BandGap(upper, lower),
		RSI:        calculator.LatestRSI(closes, rsiPeriod),
		ATR:        calculator.ATR(bars, atrPeriod),
		AvgROC:     calculator.NaNMean(roc),
		LatestROC:  calculator.LatestROC(closes, rocPeriod),
	}
	indicators := &model.IndicatorSeries{
		SMA20:      sma20,
		UpperBand:  upper,
		LowerBand:  lower,
		RSI:        rsi,
		MACD:       macd,
		MACDSignal: signal,
		ROC:        roc,
	}
	return stats, indicators, nil
}
