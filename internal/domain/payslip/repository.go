package payslip

import (
	"context"
	"time"
)

type PayslipRepository interface {
	// Create persists a new payslip. Returns ErrPayslipAlreadyExists when a
	// payslip for the same (employee, period start) pair is already present.
	Create(ctx context.Context, p Payslip) (Payslip, error)

	// ExistsForPeriod reports whether a payslip already exists for the
	// employee and period start. Used as the idempotency guard before any
	// aggregation work is done.
	ExistsForPeriod(ctx context.Context, employeeID string, periodStart time.Time) (bool, error)
}
