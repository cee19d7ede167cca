package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reloader is the part of the dashboard service refreshed on schedule.
type Reloader interface {
	Reload(ctx context.Context) error
}

type Scheduler struct {
	spec     string
	reloader Reloader
	timeout  time.Duration
	c        *cron.Cron
}

// NewScheduler creates a scheduler for spec, a cron expression with a leading seconds
// field. An empty spec disables scheduling.
func NewScheduler(spec string, reloader Reloader, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{spec: spec, reloader: reloader, timeout: timeout}
}

// Start initializes the refresh task
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec == "" {
		log.Info().Msg("dataset refresh schedule disabled")
		return nil
	}
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return err
	}

	s.c = c
	c.Start()
	log.Info().Str("schedule", s.spec).Msg("dataset refresh scheduler started")
	return nil
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		log.Error().Err(err).Msg("scheduled dataset refresh failed")
		return
	}
	log.Info().Dur("took", time.Since(start)).Msg("scheduled dataset refresh completed")
}
