package pipeline

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a workflow on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates an idle scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// Add registers a workflow under a cron spec.
func (s *Scheduler) Add(spec string, w *Workflow) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := w.Run(context.Background()); err != nil {
			s.logger.Error("scheduled workflow run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info("workflow scheduled", "spec", spec)
	return nil
}

// Start begins executing scheduled workflows.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("workflow scheduler stopped")
}
