package model

import "time"

// ChartSet holds the rendered chart images for one report section.
type ChartSet struct {
	Price []byte // close price with Bollinger bands, PNG
	RSI   []byte
	MACD  []byte
}

// ReportSection pairs one ticker's price series with its computed
// statistics and rendered charts.
type ReportSection struct {
	Series     *PriceSeries
	Stats      *Statistics
	Indicators *IndicatorSeries
	Charts     *ChartSet
}

// Report is the terminal artifact of a pipeline run. Sections keep the
// ticker order declared in the configuration.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Start       time.Time
	End         time.Time
	Sections    []ReportSection
}
