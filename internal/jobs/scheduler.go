package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/repository"
)

// Scheduler owns the nightly retention jobs. Logs and analytics events are
// append-only; age-based purges here are the only thing that removes them.
type Scheduler struct {
	cron      *cron.Cron
	logs      *repository.LogRepository
	events    *repository.AnalyticsRepository
	retention config.RetentionConfig
	log       zerolog.Logger
}

func NewScheduler(logs *repository.LogRepository, events *repository.AnalyticsRepository, retention config.RetentionConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		logs:      logs,
		events:    events,
		retention: retention,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.purgeLogs); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 30 0 * * *", s.purgeAnalytics); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish, up to a bounded grace period.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeLogs() {
	if s.retention.Logs <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention.Logs)
	purged, err := s.logs.PurgeBefore(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("log purge failed")
		return
	}
	s.log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("log retention purge complete")
}

func (s *Scheduler) purgeAnalytics() {
	if s.retention.Analytics <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention.Analytics)
	purged, err := s.events.PurgeBefore(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("analytics purge failed")
		return
	}
	s.log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("analytics retention purge complete")
}
