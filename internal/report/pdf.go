package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"MarketScribe/internal/model"
)

const (
	rowHeight  = 8.0
	pageWidth  = 190.0 // usable A4 width in mm at default margins
	labelWidth = 35.0
	valueWidth = 60.0
)

// Investopedia reference links used for the labelled figures.
const (
	linkVolatility = "https://www.investopedia.com/terms/v/volatility.asp"
	linkSharpe     = "https://www.investopedia.com/terms/s/sharperatio.asp"
	linkATR        = "https://www.investopedia.com/terms/a/atr.asp"
	linkROC        = "https://www.investopedia.com/terms/p/pricerateofchange.asp"
	linkRSI        = "https://www.investopedia.com/terms/r/rsi.asp"
	linkMACD       = "https://www.investopedia.com/terms/m/macd.asp"
	linkBollinger  = "https://www.investopedia.com/terms/b/bollingerbands.asp"
)

// Compile writes the report as a single multi-page PDF, one page block per
// ticker. The file at path is created or overwritten.
func Compile(rep *model.Report, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Market Report", false)
	pdf.SetAutoPageBreak(true, 12)

	for i := range rep.Sections {
		addSection(pdf, rep, &rep.Sections[i])
	}
	if pdf.Err() {
		return &RenderError{Symbol: "report", Chart: "document", Err: pdf.Error()}
	}
	return writeDocument(path, func(tmp string) error {
		return pdf.OutputFileAndClose(tmp)
	})
}

func addSection(pdf *fpdf.Fpdf, rep *model.Report, sec *model.ReportSection) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, fmt.Sprintf("Market Report: %s", sec.Series.Symbol), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(pageWidth, 5,
		fmt.Sprintf("%s to %s | generated %s | run %s",
			rep.Start.Format("2006-01-02"), rep.End.Format("2006-01-02"),
			rep.GeneratedAt.Format("2006-01-02 15:04"), rep.RunID),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	addKeyStats(pdf, sec.Stats)
	addMomentum(pdf, sec.Stats)
	addCharts(pdf, sec)
}

func addKeyStats(pdf *fpdf.Fpdf, st *model.Statistics) {
	heading(pdf, "Key Figures")

	row(pdf,
		cell{"Latest close:", money(st.LatestClose), ""},
		cell{"Change:", fmt.Sprintf("%+.2f%%", st.PercentChange), ""})
	row(pdf,
		cell{"Min close:", money(st.MinClose), ""},
		cell{"Max close:", money(st.MaxClose), ""})
	row(pdf,
		cell{"Mean close:", money(st.MeanClose), ""},
		cell{"Avg volume:", humanize.Comma(int64(st.AvgVolume)), ""})
	row(pdf,
		cell{"Volatility:", f4(st.Volatility), linkVolatility},
		cell{"Sharpe ratio:", f4(st.SharpeRatio), linkSharpe})
	row(pdf,
		cell{"ATR:", f4(st.ATR), linkATR},
		cell{"Avg ROC:", pct2(st.AvgROC), linkROC})
	row(pdf,
		cell{"Latest ROC:", pct2(st.LatestROC), ""},
		cell{"", "", ""})
	pdf.Ln(2)
}

func addMomentum(pdf *fpdf.Fpdf, st *model.Statistics) {
	heading(pdf, "Momentum")

	row(pdf,
		cell{"RSI:", f2(st.RSI), linkRSI},
		cell{"MACD:", f4(st.MACD), linkMACD})
	row(pdf,
		cell{"MACD signal:", f4(st.MACDSignal), ""},
		cell{"Band gap:", money(st.AvgBandGap), linkBollinger})
	pdf.Ln(2)
}

func addCharts(pdf *fpdf.Fpdf, sec *model.ReportSection) {
	if sec.Charts == nil {
		return
	}
	images := []struct {
		name string
		png  []byte
	}{
		{sec.Series.Symbol + "_price", sec.Charts.Price},
		{sec.Series.Symbol + "_rsi", sec.Charts.RSI},
		{sec.Series.Symbol + "_macd", sec.Charts.MACD},
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for _, img := range images {
		if len(img.png) == 0 {
			continue
		}
		pdf.RegisterImageOptionsReader(img.name, opts, bytes.NewReader(img.png))
		pdf.ImageOptions(img.name, 10, 0, pageWidth, 0, true, opts, 0, "")
		pdf.Ln(2)
	}
}

type cell struct {
	label string
	value string
	link  string
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pageWidth, 9, title, "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *fpdf.Fpdf, left, right cell) {
	labelCell(pdf, left)
	pdf.CellFormat(valueWidth, rowHeight, left.value, "", 0, "", false, 0, "")
	labelCell(pdf, right)
	pdf.CellFormat(valueWidth, rowHeight, right.value, "", 1, "", false, 0, "")
}

// labelCell writes the label, underlined in blue when it carries a
// reference link.
func labelCell(pdf *fpdf.Fpdf, c cell) {
	if c.link != "" {
		pdf.SetTextColor(0, 0, 255)
		pdf.SetFont("Helvetica", "U", 10)
		pdf.CellFormat(labelWidth, rowHeight, c.label, "", 0, "", false, 0, c.link)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
		return
	}
	pdf.CellFormat(labelWidth, rowHeight, c.label, "", 0, "", false, 0, "")
}

// writeDocument writes via a temp file in the target directory and renames
// into place, so a failed run never truncates an existing report.
func writeDocument(path string, write func(tmp string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func f2(v float64) string { return fmtVal(v, 2) }

func money(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return "$" + f2(v)
}
func f4(v float64) string { return fmtVal(v, 4) }

func pct2(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// fmtVal renders NaN (indicator never warmed up) as n/a.
func fmtVal(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
