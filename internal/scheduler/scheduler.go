package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is one scheduled re-run of an analysis pipeline.
type Job func() error

// Scheduler re-runs registered pipelines on a cron schedule, for datasets
// that grow as new hourly bars are appended.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// New creates a Scheduler bound to the given context.
func New(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		ctx:  ctx,
	}
}

// Register adds a named job under a cron spec.
func (s *Scheduler) Register(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if s.ctx.Err() != nil {
			return
		}
		log.Info().Str("job", name).Msg("scheduled run starting")
		if err := job(); err != nil {
			log.Error().Err(err).Str("job", name).Msg("scheduled run failed")
			return
		}
		log.Info().Str("job", name).Msg("scheduled run finished")
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("scheduler stopped")
}
