package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketScribe/internal/collector"
	"MarketScribe/internal/config"
	"MarketScribe/internal/logger"
	"MarketScribe/internal/pipeline"
	"MarketScribe/internal/scheduler"
)

// Exit codes: 0 every ticker made it into the report, 1 fatal error,
// 2 report written but at least one ticker was skipped.
const (
	exitOK      = 0
	exitFatal   = 1
	exitPartial = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init()
	log := logger.L()

	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()
	path := *cfgPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		return exitFatal
	}

	fetcher := collector.NewYahooFetcher(
		cfg.DataSource.BaseURL,
		cfg.Proxy,
		time.Duration(cfg.DataSource.TimeoutSeconds)*time.Second,
		cfg.DataSource.MaxRetries,
	)
	log.Info().Str("source", fetcher.Name()).Str("config", path).Msg("MarketScribe starting")

	pipe := pipeline.New(cfg, fetcher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule != "" {
		return runScheduled(ctx, cfg.Schedule, pipe)
	}
	return runOnce(ctx, pipe)
}

func runOnce(ctx context.Context, pipe *pipeline.Pipeline) int {
	_, err := pipe.Run(ctx)
	switch {
	case err == nil:
		return exitOK
	case isPartial(err):
		logger.L().Warn().Err(err).Msg("run finished with skipped tickers")
		return exitPartial
	default:
		logger.L().Error().Err(err).Msg("run failed")
		return exitFatal
	}
}

func runScheduled(ctx context.Context, spec string, pipe *pipeline.Pipeline) int {
	sched := scheduler.New(func() {
		if _, err := pipe.Run(ctx); err != nil {
			if isPartial(err) {
				logger.L().Warn().Err(err).Msg("scheduled run finished with skipped tickers")
				return
			}
			logger.L().Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err := sched.Register(spec); err != nil {
		logger.L().Error().Err(err).Msg("register schedule")
		return exitFatal
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.L().Info().Msg("RUN_ON_START enabled, generating report now")
		runOnce(ctx, pipe)
	}

	logger.L().Info().Str("schedule", spec).Msg("running on schedule, Ctrl+C to stop")
	<-ctx.Done()
	return exitOK
}

func isPartial(err error) bool {
	var re *pipeline.RunError
	return errors.As(err, &re)
}
