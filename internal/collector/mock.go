package collector

import (
	"context"
	"sync"
	"time"

	"MarketScribe/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series    map[string][]model.OHLCV // per-symbol canned bars
	Errs      map[string]error         // per-symbol forced errors
	BasePrice float64                  // synthetic bar base when no canned data, default 100

	mu    sync.Mutex
	calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol)
	m.mu.Unlock()

	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Series[symbol]; ok {
		out := make([]model.OHLCV, len(bars))
		copy(out, bars)
		return out, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return GenerateBars(symbol, base, start, end), nil
}

// Calls returns the symbols fetched so far, in call order.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// GenerateBars builds deterministic synthetic weekday bars for [start, end).
// The drift depends only on the symbol and day index, so repeated runs over
// the same range produce identical data.
func GenerateBars(symbol string, basePrice float64, start, end time.Time) []model.OHLCV {
	var seed int
	for _, r := range symbol {
		seed += int(r)
	}

	var bars []model.OHLCV
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		// small deterministic oscillation plus a slow upward drift
		wave := float64((i*7+seed)%13-6) * 0.002
		p := basePrice * (1 + float64(i)*0.0005 + wave)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: float64(1000000 + (i*seed)%250000),
		})
		i++
	}
	return bars
}
