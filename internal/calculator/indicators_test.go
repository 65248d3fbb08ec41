package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_Warmup(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi := RSISeries(closes, 14)
	for i := 0; i < 14; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Errorf("position %d: expected NaN during warm-up, got %f", i, rsi[i])
		}
	}
	// strictly rising closes: no losses, RSI pegged at 100
	for i := 14; i < len(rsi); i++ {
		if rsi[i] != 100 {
			t.Errorf("position %d: expected 100 for all-gain window, got %f", i, rsi[i])
		}
	}
}

func TestRSISeries_AllLosses(t *testing.T) {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi := RSISeries(closes, 14)
	if got := rsi[15]; got != 0 {
		t.Errorf("expected 0 for all-loss window, got %f", got)
	}
}

func TestRSISeries_FlatWindow(t *testing.T) {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = 100
	}
	rsi := RSISeries(closes, 14)
	if !math.IsNaN(rsi[15]) {
		t.Errorf("expected NaN for a flat window, got %f", rsi[15])
	}
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	// alpha = 0.5: 1, 1.5, 2.25
	want := []float64{1, 1.5, 2.25}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("position %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestMACDSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd, signal := MACDSeries(closes)
	if len(macd) != len(closes) || len(signal) != len(closes) {
		t.Fatalf("series must align with input")
	}
	if macd[0] != 0 {
		t.Errorf("first MACD value must be 0 (both EMAs seeded equal), got %f", macd[0])
	}
	// a steady uptrend keeps the fast EMA above the slow one
	if macd[len(macd)-1] <= 0 {
		t.Errorf("expected positive MACD in an uptrend, got %f", macd[len(macd)-1])
	}
}

func TestBollinger(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 50
	}
	middle, upper, lower := Bollinger(closes, 20, 2)
	last := len(closes) - 1
	if !almostEqual(middle[last], 50) {
		t.Errorf("expected middle band 50, got %f", middle[last])
	}
	// constant prices: zero deviation, bands collapse onto the middle
	if !almostEqual(upper[last], 50) || !almostEqual(lower[last], 50) {
		t.Errorf("expected collapsed bands, got upper=%f lower=%f", upper[last], lower[last])
	}
	if !math.IsNaN(upper[0]) {
		t.Error("expected NaN during warm-up")
	}
	if gap := BandGap(upper, lower); !almostEqual(gap, 0) {
		t.Errorf("expected zero gap, got %f", gap)
	}
}

func TestATR(t *testing.T) {
	bars := barsFromCloses(100, 102, 101, 103, 99)
	if got := ATR(bars, 3); math.IsNaN(got) || got <= 0 {
		t.Errorf("expected positive ATR, got %f", got)
	}
	if got := ATR(bars, 14); !math.IsNaN(got) {
		t.Errorf("expected NaN for insufficient data, got %f", got)
	}
}

func TestTrueRange_FirstBarUsesHighLow(t *testing.T) {
	bars := barsFromCloses(100, 90)
	tr := TrueRange(bars)
	if !almostEqual(tr[0], bars[0].High-bars[0].Low) {
		t.Errorf("expected %f, got %f", bars[0].High-bars[0].Low, tr[0])
	}
	// the gap down dominates the second bar's range
	if tr[1] <= bars[1].High-bars[1].Low {
		t.Errorf("expected gap to widen true range, got %f", tr[1])
	}
}

func TestROCSeries(t *testing.T) {
	closes := []float64{100, 101, 102, 110}
	roc := ROCSeries(closes, 3)
	for i := 0; i < 3; i++ {
		if !math.IsNaN(roc[i]) {
			t.Errorf("position %d: expected NaN during warm-up", i)
		}
	}
	if !almostEqual(roc[3], 10) {
		t.Errorf("expected 10%%, got %f", roc[3])
	}
	if got := LatestROC(closes, 3); !almostEqual(got, 10) {
		t.Errorf("expected 10%%, got %f", got)
	}
}
