package housekeeping

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner executes the purger on a cron schedule
type Runner struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewRunner schedules the purger. The schedule uses six-field cron syntax
// with a leading seconds field.
func NewRunner(schedule string, purger *Purger, logger *zap.Logger) (*Runner, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(schedule, func() {
		if _, err := purger.Purge(context.Background()); err != nil {
			logger.Error("Housekeeping run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid housekeeping schedule %q: %w", schedule, err)
	}

	return &Runner{cron: c, logger: logger}, nil
}

// Start begins scheduled execution
func (r *Runner) Start() {
	r.logger.Info("Housekeeping scheduler started")
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("Housekeeping scheduler stopped")
}
