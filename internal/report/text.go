package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"MarketScribe/internal/model"
)

// CompileText writes the report in the plain-text format: the same figures
// as the PDF, without charts.
func CompileText(rep *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("Market Report\n")
	b.WriteString(fmt.Sprintf("Range: %s to %s\n",
		rep.Start.Format("2006-01-02"), rep.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Generated: %s (run %s)\n\n",
		rep.GeneratedAt.Format("2006-01-02 15:04:05"), rep.RunID))

	for i := range rep.Sections {
		writeTextSection(&b, &rep.Sections[i])
	}

	return writeDocument(path, func(tmp string) error {
		return os.WriteFile(tmp, []byte(b.String()), 0644)
	})
}

func writeTextSection(b *strings.Builder, sec *model.ReportSection) {
	st := sec.Stats
	b.WriteString(fmt.Sprintf("Ticker: %s\n", sec.Series.Symbol))
	b.WriteString(fmt.Sprintf("Latest close: %s\n", money(st.LatestClose)))
	b.WriteString(fmt.Sprintf("Change over range: %+.2f%%\n", st.PercentChange))
	b.WriteString(fmt.Sprintf("Close min/mean/max: %s / %s / %s\n",
		money(st.MinClose), money(st.MeanClose), money(st.MaxClose)))
	b.WriteString(fmt.Sprintf("Avg volume: %s\n", humanize.Comma(int64(st.AvgVolume))))
	b.WriteString(fmt.Sprintf("Volatility: %s (%s)\n", f4(st.Volatility), linkVolatility))
	b.WriteString(fmt.Sprintf("Sharpe ratio: %s (%s)\n", f4(st.SharpeRatio), linkSharpe))
	b.WriteString(fmt.Sprintf("ATR: %s (%s)\n", f4(st.ATR), linkATR))
	b.WriteString(fmt.Sprintf("Avg ROC: %s (%s)\n", pct2(st.AvgROC), linkROC))
	b.WriteString(fmt.Sprintf("Latest ROC: %s\n", pct2(st.LatestROC)))
	b.WriteString(fmt.Sprintf("RSI: %s (%s)\n", f2(st.RSI), linkRSI))
	b.WriteString(fmt.Sprintf("MACD: %s / signal %s (%s)\n", f4(st.MACD), f4(st.MACDSignal), linkMACD))
	b.WriteString(fmt.Sprintf("Avg Bollinger band gap: %s (%s)\n", money(st.AvgBandGap), linkBollinger))
	b.WriteString("\n")
}
