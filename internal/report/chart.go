package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"MarketScribe/internal/model"
)

// RenderError reports a chart that could not be produced.
type RenderError struct {
	Symbol string
	Chart  string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart for %s: %v", e.Chart, e.Symbol, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// RenderCharts produces the chart images for one section: close price with
// Bollinger bands, RSI, and MACD.
func RenderCharts(sec *model.ReportSection) (*model.ChartSet, error) {
	price, err := renderPriceChart(sec)
	if err != nil {
		return nil, &RenderError{Symbol: sec.Series.Symbol, Chart: "price", Err: err}
	}
	rsi, err := renderRSIChart(sec)
	if err != nil {
		return nil, &RenderError{Symbol: sec.Series.Symbol, Chart: "rsi", Err: err}
	}
	macd, err := renderMACDChart(sec)
	if err != nil {
		return nil, &RenderError{Symbol: sec.Series.Symbol, Chart: "macd", Err: err}
	}
	return &model.ChartSet{Price: price, RSI: rsi, MACD: macd}, nil
}

func renderPriceChart(sec *model.ReportSection) ([]byte, error) {
	times := sec.Series.Times()
	dashed := chart.Style{
		StrokeColor:     chart.ColorAlternateGray,
		StrokeDashArray: []float64{5, 5},
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s close with Bollinger bands", sec.Series.Symbol),
		Width:  1100,
		Height: 450,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		Series: nonEmpty(
			timeSeries("Close", chart.Style{StrokeColor: chart.ColorBlue}, times, sec.Series.Closes()),
			timeSeries("Upper BB", dashed, times, sec.Indicators.UpperBand),
			timeSeries("Lower BB", dashed, times, sec.Indicators.LowerBand),
		),
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return renderPNG(&graph)
}

func renderRSIChart(sec *model.ReportSection) ([]byte, error) {
	times := sec.Series.Times()
	first, last := times[0], times[len(times)-1]
	guide := func(name string, level float64, color chart.Style) chart.TimeSeries {
		color.StrokeDashArray = []float64{3, 3}
		return chart.TimeSeries{
			Name:    name,
			Style:   color,
			XValues: []time.Time{first, last},
			YValues: []float64{level, level},
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s RSI (14)", sec.Series.Symbol),
		Width:  1100,
		Height: 260,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: nonEmpty(
			timeSeries("RSI", chart.Style{StrokeColor: chart.ColorAlternateBlue}, times, sec.Indicators.RSI),
			guide("Overbought", 70, chart.Style{StrokeColor: chart.ColorRed}),
			guide("Oversold", 30, chart.Style{StrokeColor: chart.ColorGreen}),
		),
	}
	return renderPNG(&graph)
}

func renderMACDChart(sec *model.ReportSection) ([]byte, error) {
	times := sec.Series.Times()
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s MACD (12/26/9)", sec.Series.Symbol),
		Width:  1100,
		Height: 260,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		Series: nonEmpty(
			timeSeries("MACD", chart.Style{StrokeColor: chart.ColorBlue}, times, sec.Indicators.MACD),
			timeSeries("Signal", chart.Style{StrokeColor: chart.ColorOrange}, times, sec.Indicators.MACDSignal),
		),
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return renderPNG(&graph)
}

// timeSeries builds a TimeSeries with NaN points removed. go-chart does not
// tolerate NaN values, so warm-up gaps are simply not drawn.
func timeSeries(name string, style chart.Style, times []time.Time, values []float64) chart.TimeSeries {
	xs := make([]time.Time, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, v)
	}
	return chart.TimeSeries{Name: name, Style: style, XValues: xs, YValues: ys}
}

// nonEmpty drops series whose points were all filtered out; go-chart fails
// on zero-length series.
func nonEmpty(in ...chart.TimeSeries) []chart.Series {
	out := make([]chart.Series, 0, len(in))
	for _, s := range in {
		if len(s.XValues) > 1 {
			out = append(out, s)
		}
	}
	return out
}

func renderPNG(graph *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
