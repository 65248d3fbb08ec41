package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketScribe/internal/model"
)

// Fetcher defines the interface for retrieving historical prices from an
// external market-data service.
type Fetcher interface {
	// FetchHistory returns daily bars for the half-open range [start, end),
	// sorted ascending with duplicate dates removed.
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// ErrSymbolNotFound indicates the service does not recognize the ticker.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrEmptyData indicates the service returned no usable bars for the range.
var ErrEmptyData = errors.New("no price data in range")

// RequestError wraps a transport failure or an unexpected HTTP status.
type RequestError struct {
	Symbol string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Symbol, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
