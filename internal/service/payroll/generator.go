package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/pdf"
)

// Generator orchestrates per-employee payslip generation: period
// calculation, attendance aggregation, tax application and persistence,
// guarded by the (employee, period start) idempotency key. Employees are
// processed sequentially; one employee's failure never aborts the batch.
type Generator struct {
	policies    policy.Provider
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	payslips    payslip.PayslipRepository
	notifier    notification.Service

	periods    *PeriodCalculator
	aggregator *AttendanceAggregator
	taxes      *TaxEngine

	now func() time.Time
}

func NewGenerator(
	policies policy.Provider,
	employees employee.EmployeeRepository,
	attendances attendance.AttendanceRepository,
	payslips payslip.PayslipRepository,
	notifier notification.Service,
) *Generator {
	return &Generator{
		policies:    policies,
		employees:   employees,
		attendances: attendances,
		payslips:    payslips,
		notifier:    notifier,
		periods:     NewPeriodCalculator(),
		aggregator:  NewAttendanceAggregator(),
		taxes:       NewTaxEngine(),
		now:         time.Now,
	}
}

// WithClock substitutes the wall clock, for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Run generates payslips for every company whose policy says today is a
// payday. A company with a broken configuration is skipped for this tick.
func (g *Generator) Run(ctx context.Context) error {
	companyIDs, err := g.policies.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	today := dateOnly(g.now())

	for _, companyID := range companyIDs {
		if err := g.runCompany(ctx, companyID, today); err != nil {
			slog.Error("Payslip generation skipped for company",
				"company_id", companyID, "error", err)
		}
	}
	return nil
}

func (g *Generator) runCompany(ctx context.Context, companyID string, today time.Time) error {
	cycle, err := g.policies.GetPayCyclePolicy(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to get pay cycle policy: %w", err)
	}

	if !cycle.AutoGenerate {
		slog.Debug("Auto-generation disabled, skipping company", "company_id", companyID)
		return nil
	}

	payday, err := g.periods.IsPayday(today, cycle)
	if err != nil {
		return err
	}
	if !payday {
		return nil
	}

	period, err := g.periods.CurrentPeriod(today, cycle)
	if err != nil {
		return err
	}

	taxPolicy, err := g.policies.GetTaxPolicy(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to get tax policy: %w", err)
	}

	employees, err := g.employees.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to get employees: %w", err)
	}

	generated := 0
	for _, emp := range employees {
		created, err := g.generateForEmployee(ctx, emp, period, cycle, taxPolicy, today)
		if err != nil {
			slog.Error("Payslip generation failed for employee",
				"employee_id", emp.ID, "company_id", companyID, "error", err)
			continue
		}
		if created {
			generated++
		}
	}

	slog.Info("Payslip generation completed",
		"company_id", companyID,
		"period_start", period.Start.Format("2006-01-02"),
		"period_end", period.End.Format("2006-01-02"),
		"generated", generated)
	return nil
}

// generateForEmployee is one independent unit of work. It returns false
// without error when a payslip for the period already exists.
func (g *Generator) generateForEmployee(
	ctx context.Context,
	emp employee.Employee,
	period Period,
	cycle policy.PayCyclePolicy,
	taxPolicy policy.TaxPolicy,
	today time.Time,
) (bool, error) {
	exists, err := g.payslips.ExistsForPeriod(ctx, emp.ID, period.Start)
	if err != nil {
		return false, fmt.Errorf("failed to check existing payslip: %w", err)
	}
	if exists {
		return false, nil
	}

	records, err := g.attendances.ListByEmployeeAndRange(ctx, emp.ID, period.Start, period.End, emp.CompanyID)
	if err != nil {
		return false, fmt.Errorf("failed to load attendance: %w", err)
	}

	hours := g.aggregator.Aggregate(records, cycle.OvertimeEnabled)

	rate := cycle.DefaultHourlyRate
	if emp.HourlyRate != nil && !emp.HourlyRate.IsZero() {
		rate = *emp.HourlyRate
	}

	regular := decimal.NewFromFloat(hours.RegularHours)
	overtime := decimal.NewFromFloat(hours.OvertimeHours)
	gross := regular.Mul(rate).
		Add(overtime.Mul(rate).Mul(cycle.OvertimeMultiplier)).
		Round(2)

	taxed := g.taxes.Apply(gross, taxPolicy)

	slip := payslip.Payslip{
		EmployeeID:         emp.ID,
		CompanyID:          emp.CompanyID,
		PeriodStart:        period.Start,
		PeriodEnd:          period.End,
		TotalHours:         hours.TotalHours,
		OvertimeHours:      hours.OvertimeHours,
		OvertimeMultiplier: cycle.OvertimeMultiplier,
		GrossPay:           gross,
		Deductions:         taxed.Deductions,
		NetPay:             taxed.NetPay,
		IssueDate:          today,
		Status:             payslip.PayslipStatusPending,
	}

	document, err := pdf.RenderPayslip(slip, emp.FullName)
	if err != nil {
		// The payslip record is the source of truth; a rendering failure
		// only costs the attachment.
		slog.Error("Payslip PDF rendering failed", "employee_id", emp.ID, "error", err)
	} else {
		slip.Document = document
	}

	created, err := g.payslips.Create(ctx, slip)
	if err != nil {
		if errors.Is(err, payslip.ErrPayslipAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create payslip: %w", err)
	}

	g.notifyGenerated(ctx, emp, created)
	return true, nil
}

func (g *Generator) notifyGenerated(ctx context.Context, emp employee.Employee, slip payslip.Payslip) {
	if g.notifier == nil || emp.UserID == nil {
		return
	}

	err := g.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   emp.CompanyID,
		RecipientID: *emp.UserID,
		Kind:        notification.KindPayslipGenerated,
		Title:       "Payslip Generated",
		Message: fmt.Sprintf("Your payslip for %s - %s is ready",
			slip.PeriodStart.Format("2006-01-02"), slip.PeriodEnd.Format("2006-01-02")),
		Data: map[string]interface{}{
			"payslip_id":   slip.ID,
			"period_start": slip.PeriodStart.Format("2006-01-02"),
			"period_end":   slip.PeriodEnd.Format("2006-01-02"),
			"net_pay":      slip.NetPay.String(),
		},
		PushToken: emp.PushToken,
	})
	if err != nil {
		slog.Error("Failed to queue payslip notification", "employee_id", emp.ID, "error", err)
	}
}
