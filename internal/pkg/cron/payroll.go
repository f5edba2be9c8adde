package cron

import (
	"context"
	"time"
)

// PayslipRunner runs one payslip generation sweep.
type PayslipRunner interface {
	Run(ctx context.Context) error
}

// PayrollJobs contains payroll-related cron jobs
type PayrollJobs struct {
	generator    PayslipRunner
	tickInterval time.Duration
	now          func() time.Time
}

// NewPayrollJobs creates payroll cron jobs
func NewPayrollJobs(generator PayslipRunner, tickInterval time.Duration) *PayrollJobs {
	if tickInterval <= 0 {
		tickInterval = time.Hour
	}
	return &PayrollJobs{generator: generator, tickInterval: tickInterval, now: time.Now}
}

// WithClock substitutes the wall clock, for tests.
func (j *PayrollJobs) WithClock(now func() time.Time) *PayrollJobs {
	j.now = now
	return j
}

// RegisterJobs registers all payroll-related cron jobs. The job ticks
// hourly but only generates during the midnight hour, so a restart never
// skips a day; the idempotency guard makes extra runs harmless.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_payslips", j.tickInterval, j.GeneratePayslips)
}

// GeneratePayslips runs the daily payslip batch.
func (j *PayrollJobs) GeneratePayslips(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if j.now().UTC().Hour() != 0 {
		return nil
	}
	return j.generator.Run(ctx)
}
