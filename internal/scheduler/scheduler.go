// Package scheduler re-runs the report pipeline on a cron schedule.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"MarketScribe/internal/logger"
)

// Scheduler triggers a job on a cron expression (with seconds field).
type Scheduler struct {
	cron *cron.Cron
	job  func()
}

// New creates a Scheduler around the given job.
func New(job func()) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		job:  job,
	}
}

// Register adds the cron entry.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.job); err != nil {
		return fmt.Errorf("register schedule %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.L().Info().Msg("scheduler started")
}

// Stop stops the cron scheduler; running jobs finish first.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.L().Info().Msg("scheduler stopped")
}
