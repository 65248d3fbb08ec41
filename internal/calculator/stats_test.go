package calculator

import (
	"math"
	"testing"
	"time"

	"MarketScribe/internal/model"
)

func barsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 4) {
		t.Errorf("expected 4, got %f", got)
	}
	if _, err := SMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := SMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCloseStats(t *testing.T) {
	minC, maxC, meanC, err := CloseStats(barsFromCloses(10, 30, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minC != 10 || maxC != 30 || !almostEqual(meanC, 20) {
		t.Errorf("got min=%f max=%f mean=%f", minC, maxC, meanC)
	}
	if _, _, _, err := CloseStats(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestPercentChange(t *testing.T) {
	got, err := PercentChange([]float64{100, 120, 110})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 10) {
		t.Errorf("expected 10%%, got %f", got)
	}
	if _, err := PercentChange([]float64{100}); err == nil {
		t.Error("expected error for single value")
	}
	if _, err := PercentChange([]float64{0, 10}); err == nil {
		t.Error("expected error for zero first value")
	}
}

func TestRollingMean(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4}, 2)
	if !math.IsNaN(got[0]) {
		t.Error("expected NaN during warm-up")
	}
	want := []float64{1.5, 2.5, 3.5}
	for i, w := range want {
		if !almostEqual(got[i+1], w) {
			t.Errorf("position %d: expected %f, got %f", i+1, w, got[i+1])
		}
	}
}

func TestRollingStd(t *testing.T) {
	got := RollingStd([]float64{2, 4, 2, 4}, 2)
	if !math.IsNaN(got[0]) {
		t.Error("expected NaN during warm-up")
	}
	// sample std of {2,4} is sqrt(2)
	for i := 1; i < len(got); i++ {
		if !almostEqual(got[i], math.Sqrt2) {
			t.Errorf("position %d: expected sqrt(2), got %f", i, got[i])
		}
	}
}

func TestNaNMean(t *testing.T) {
	if got := NaNMean([]float64{math.NaN(), 2, 4}); !almostEqual(got, 3) {
		t.Errorf("expected 3, got %f", got)
	}
	if got := NaNMean([]float64{math.NaN()}); !math.IsNaN(got) {
		t.Errorf("expected NaN for all-NaN input, got %f", got)
	}
}

func TestDailyReturnsAndVolatility(t *testing.T) {
	rets := DailyReturns([]float64{100, 110, 99})
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if !almostEqual(rets[0], 0.1) || !almostEqual(rets[1], -0.1) {
		t.Errorf("unexpected returns: %v", rets)
	}

	vol, err := Volatility(rets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sample std of {0.1, -0.1}
	if !almostEqual(vol, 0.1*math.Sqrt2) {
		t.Errorf("expected %f, got %f", 0.1*math.Sqrt2, vol)
	}

	if _, err := Volatility([]float64{0.1}); err == nil {
		t.Error("expected error for single return")
	}
}

func TestSharpeRatio(t *testing.T) {
	if got := SharpeRatio(0.01, 0.02, 4); !almostEqual(got, 1) {
		t.Errorf("expected 1, got %f", got)
	}
	if got := SharpeRatio(0.01, 0, 4); got != 0 {
		t.Errorf("expected 0 for zero volatility, got %f", got)
	}
}
