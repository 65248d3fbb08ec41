// Package pipeline runs the gather → analyze → compile flow for a
// configured set of tickers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"MarketScribe/internal/analyzer"
	"MarketScribe/internal/collector"
	"MarketScribe/internal/config"
	"MarketScribe/internal/logger"
	"MarketScribe/internal/model"
	"MarketScribe/internal/report"
)

// fetchParallelism bounds concurrent requests to the data provider.
const fetchParallelism = 4

// ErrNoSections indicates every configured ticker failed, so there is
// nothing to compile.
var ErrNoSections = errors.New("no ticker could be processed")

// RunError reports tickers that were skipped; the written report covers the
// remaining ones.
type RunError struct {
	Failed []string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("report is partial, skipped tickers: %s", strings.Join(e.Failed, ", "))
}

// Pipeline wires a fetcher to the analysis and report stages.
type Pipeline struct {
	cfg     *config.Config
	fetcher collector.Fetcher
}

// New creates a Pipeline.
func New(cfg *config.Config, fetcher collector.Fetcher) *Pipeline {
	return &Pipeline{cfg: cfg, fetcher: fetcher}
}

// Run executes one full pass: fetch and analyze every configured ticker,
// render charts, and write the report to the configured output path.
// Per-ticker failures are logged and skipped; the section order always
// matches the configured ticker order. The returned report covers the
// successful subset even when err is a *RunError.
func (p *Pipeline) Run(ctx context.Context) (*model.Report, error) {
	start, end := p.cfg.Range()
	runID := uuid.NewString()
	log := logger.L().With().Str("run_id", runID).Logger()

	log.Info().
		Strs("tickers", p.cfg.Tickers).
		Str("source", p.fetcher.Name()).
		Time("start", start).
		Time("end", end).
		Msg("pipeline run starting")

	sections := make([]*model.ReportSection, len(p.cfg.Tickers))
	failures := make([]error, len(p.cfg.Tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for i, ticker := range p.cfg.Tickers {
		i, ticker := i, ticker // pre-1.22 loop variable capture
		g.Go(func() error {
			sec, err := p.process(gctx, ticker, start, end)
			if err != nil {
				failures[i] = err
				return nil // per-ticker failures never abort the run
			}
			sections[i] = sec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &model.Report{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Start:       start,
		End:         end,
	}
	var failed []string
	for i, ticker := range p.cfg.Tickers {
		if failures[i] != nil {
			log.Warn().Err(failures[i]).Str("ticker", ticker).Msg("ticker skipped")
			failed = append(failed, ticker)
			continue
		}
		sec := sections[i]
		charts, err := report.RenderCharts(sec)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("ticker skipped")
			failed = append(failed, ticker)
			continue
		}
		sec.Charts = charts
		rep.Sections = append(rep.Sections, *sec)
	}

	if len(rep.Sections) == 0 {
		return nil, fmt.Errorf("%w (%d tickers failed)", ErrNoSections, len(failed))
	}

	if err := p.compile(rep); err != nil {
		return nil, err
	}
	log.Info().
		Int("sections", len(rep.Sections)).
		Int("skipped", len(failed)).
		Str("output", p.cfg.OutputPath).
		Msg("report written")

	if len(failed) > 0 {
		return rep, &RunError{Failed: failed}
	}
	return rep, nil
}

func (p *Pipeline) process(ctx context.Context, ticker string, start, end time.Time) (*model.ReportSection, error) {
	bars, err := p.fetcher.FetchHistory(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	series := &model.PriceSeries{
		Symbol:    ticker,
		Bars:      bars,
		FetchedAt: time.Now(),
	}
	stats, indicators, err := analyzer.Analyze(series)
	if err != nil {
		return nil, err
	}
	logger.L().Debug().
		Str("ticker", ticker).
		Int("bars", len(bars)).
		Float64("pct_change", stats.PercentChange).
		Msg("ticker analyzed")
	return &model.ReportSection{Series: series, Stats: stats, Indicators: indicators}, nil
}

func (p *Pipeline) compile(rep *model.Report) error {
	if p.cfg.ReportFormat == "txt" {
		return report.CompileText(rep, p.cfg.OutputPath)
	}
	return report.Compile(rep, p.cfg.OutputPath)
}
