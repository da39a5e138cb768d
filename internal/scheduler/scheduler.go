// Package scheduler runs periodic maintenance jobs inside the server process.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRetentionCron runs the retention job every day at 03:00 (seconds field first).
	DefaultRetentionCron = "0 0 3 * * *"

	retentionJobTimeout = 5 * time.Minute
)

// RetentionRunner deletes audit entries older than the given number of days.
type RetentionRunner interface {
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}

// Scheduler wraps a cron instance with second-level precision.
type Scheduler struct {
	cron          *cron.Cron
	runner        RetentionRunner
	retentionDays int
	cronExpr      string
	logger        *slog.Logger
	entries       map[string]cron.EntryID
	ctx           context.Context
}

// NewScheduler creates a scheduler for the audit retention job.
func NewScheduler(runner RetentionRunner, retentionDays int, cronExpr string, logger *slog.Logger) *Scheduler {
	if cronExpr == "" {
		cronExpr = DefaultRetentionCron
	}

	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		runner:        runner,
		retentionDays: retentionDays,
		cronExpr:      cronExpr,
		logger:        logger,
		entries:       make(map[string]cron.EntryID),
		ctx:           context.Background(),
	}
}

// Enabled reports whether a retention window is configured.
func (s *Scheduler) Enabled() bool {
	return s.retentionDays > 0
}

// Start registers the retention job and starts the cron loop. Jobs run with a
// context derived from ctx. It is a no-op when retention is disabled.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Info("audit retention scheduler disabled")
		return nil
	}
	s.ctx = ctx

	entryID, err := s.cron.AddFunc(s.cronExpr, func() {
		if _, err := s.RunRetention(s.ctx); err != nil {
			s.logger.Error("audit retention job failed", slog.Any("error", err))
		}
	})
	if err != nil {
		s.logger.Error("failed to register audit retention job",
			slog.String("cron", s.cronExpr),
			slog.Any("error", err))
		return err
	}

	s.entries["audit_retention"] = entryID
	s.logger.Info("audit retention job registered",
		slog.String("cron", s.cronExpr),
		slog.Int("retention_days", s.retentionDays),
		slog.Int("entry_id", int(entryID)))

	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if !s.Enabled() {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("audit retention scheduler stopped")
}

// RunRetention deletes audit entries older than the configured window once.
func (s *Scheduler) RunRetention(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, retentionJobTimeout)
	defer cancel()

	deleted, err := s.runner.DeleteOlderThan(ctx, s.retentionDays, false)
	if err != nil {
		return 0, err
	}

	s.logger.Info("audit retention job completed",
		slog.Int("retention_days", s.retentionDays),
		slog.Int64("deleted", deleted))
	return deleted, nil
}
