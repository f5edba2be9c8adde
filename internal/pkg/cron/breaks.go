package cron

import (
	"context"
	"time"
)

// BreakPoller runs one pass over open break episodes.
type BreakPoller interface {
	Poll(ctx context.Context) error
}

// BreakJobs contains break-compliance cron jobs
type BreakJobs struct {
	monitor      BreakPoller
	pollInterval time.Duration
}

// NewBreakJobs creates break monitoring cron jobs
func NewBreakJobs(monitor BreakPoller, pollInterval time.Duration) *BreakJobs {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &BreakJobs{monitor: monitor, pollInterval: pollInterval}
}

// RegisterJobs registers all break-related cron jobs
func (j *BreakJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("monitor_breaks", j.pollInterval, j.MonitorBreaks)
}

// MonitorBreaks runs one polling pass over open break episodes.
func (j *BreakJobs) MonitorBreaks(ctx context.Context) error {
	return j.monitor.Poll(ctx)
}
