// Package scheduler runs the full sync on a cron cadence. The scheduled run
// and the manual API trigger share the exact same entry point.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New registers run under the given cron expression (standard five-field
// syntax). The job is not started until Start is called.
func New(schedule string, run func(), logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		return nil, fmt.Errorf("registering sync schedule %q: %w", schedule, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
