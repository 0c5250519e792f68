package retention

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"runlog/internal/logger"
)

// Sweeper runs a sweep policy on a cron schedule. It is the scheduled
// cleanup task that complements the append-only session logs.
type Sweeper struct {
	policy *Policy
	cron   *cron.Cron
}

// NewSweeper schedules policy on the given cron expression
// (e.g. "0 3 * * *" for a nightly sweep).
func NewSweeper(policy *Policy, schedule string) (*Sweeper, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := policy.Sweep(); err != nil {
			logger.Log.Warn("Scheduled sweep failed: {error}", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return &Sweeper{policy: policy, cron: c}, nil
}

// Start begins running scheduled sweeps in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
