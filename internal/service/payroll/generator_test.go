package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
)

// ===== fakes =====

type fakePolicyProvider struct {
	cycle policy.PayCyclePolicy
	tax   policy.TaxPolicy
}

func (f *fakePolicyProvider) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{f.cycle.CompanyID}, nil
}

func (f *fakePolicyProvider) GetPayCyclePolicy(ctx context.Context, companyID string) (policy.PayCyclePolicy, error) {
	return f.cycle, nil
}

func (f *fakePolicyProvider) GetTaxPolicy(ctx context.Context, companyID string) (policy.TaxPolicy, error) {
	return f.tax, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.Attendance
	failFor string
	open    []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Attendance, error) {
	if f.failFor == employeeID {
		return nil, errors.New("attendance store unavailable")
	}
	return f.records[employeeID], nil
}

func (f *fakeAttendanceRepo) ListWithOpenBreak(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return f.open, nil
}

type fakePayslipRepo struct {
	created []payslip.Payslip
}

func (f *fakePayslipRepo) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	exists, _ := f.ExistsForPeriod(ctx, p.EmployeeID, p.PeriodStart)
	if exists {
		return payslip.Payslip{}, payslip.ErrPayslipAlreadyExists
	}
	p.ID = "slip-" + p.EmployeeID
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePayslipRepo) ExistsForPeriod(ctx context.Context, employeeID string, periodStart time.Time) (bool, error) {
	for _, p := range f.created {
		if p.EmployeeID == employeeID && p.PeriodStart.Equal(periodStart) {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
	recent bool
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) HasRecentByKinds(ctx context.Context, recipientID string, kinds []notification.NotificationKind, within time.Duration) (bool, error) {
	return f.recent, nil
}

func (f *fakeNotifier) Stop() {}

// ===== helpers =====

func strPtr(s string) *string { return &s }

// 2025-06-16 is a Monday; the weekly policy below makes it a payday.
var payMonday = time.Date(2025, time.June, 16, 0, 30, 0, 0, time.UTC)

func weeklyFixture() (*fakePolicyProvider, *fakeEmployeeRepo, *fakeAttendanceRepo, *fakePayslipRepo, *fakeNotifier) {
	rate := dec("10")
	policies := &fakePolicyProvider{
		cycle: policy.PayCyclePolicy{
			CompanyID:          "co-1",
			Frequency:          policy.FrequencyWeekly,
			PayWeekday:         time.Monday,
			OvertimeEnabled:    true,
			OvertimeMultiplier: dec("1.5"),
			DefaultHourlyRate:  dec("20"),
			AutoGenerate:       true,
		},
		tax: policy.TaxPolicy{
			Enabled:               true,
			SocialSecurityEnabled: true,
			SocialSecurityRate:    dec("10"),
		},
	}
	employees := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "emp-1", UserID: strPtr("user-1"), CompanyID: "co-1", FullName: "Ayu Lestari", HourlyRate: &rate},
		},
	}
	attendances := &fakeAttendanceRepo{
		records: map[string][]attendance.Attendance{
			// one 10-hour day inside the trailing week: 8 regular + 2 overtime
			"emp-1": {record(date(2025, time.June, 12), "08:00", "18:00", 0)},
		},
	}
	return policies, employees, attendances, &fakePayslipRepo{}, &fakeNotifier{}
}

// ===== tests =====

func TestGenerator_GeneratesPayslipOnPayday(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	require.Len(t, payslips.created, 1)

	slip := payslips.created[0]
	assert.Equal(t, "emp-1", slip.EmployeeID)
	assert.Equal(t, date(2025, time.June, 10), slip.PeriodStart)
	assert.Equal(t, date(2025, time.June, 16), slip.PeriodEnd)
	assert.Equal(t, 10.0, slip.TotalHours)
	assert.Equal(t, 2.0, slip.OvertimeHours)
	assert.Equal(t, payslip.PayslipStatusPending, slip.Status)

	// gross = 8*10 + 2*10*1.5 = 110; social security 10% = 11
	assert.True(t, slip.GrossPay.Equal(dec("110")), "got %s", slip.GrossPay)
	assert.True(t, slip.NetPay.Equal(dec("99")), "got %s", slip.NetPay)
	require.Len(t, slip.Deductions, 1)
	assert.Equal(t, "Social Security", slip.Deductions[0].Type)

	assert.NotEmpty(t, slip.Document, "payslip pdf should be attached")

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, notification.KindPayslipGenerated, notifier.queued[0].Kind)
	assert.Equal(t, "user-1", notifier.queued[0].RecipientID)
}

func TestGenerator_SecondRunIsNoOp(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	require.NoError(t, gen.Run(context.Background()))

	assert.Len(t, payslips.created, 1, "second run must not create a duplicate")
	assert.Len(t, notifier.queued, 1, "second run must not re-notify")
}

func TestGenerator_NotPaydaySkips(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday.AddDate(0, 0, 1) })

	require.NoError(t, gen.Run(context.Background()))
	assert.Empty(t, payslips.created)
}

func TestGenerator_AutoGenerateDisabledSkips(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()
	policies.cycle.AutoGenerate = false

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	assert.Empty(t, payslips.created)
}

func TestGenerator_EmployeeFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()
	employees.employees = append(employees.employees, employee.Employee{
		ID: "emp-2", UserID: strPtr("user-2"), CompanyID: "co-1", FullName: "Budi Santoso",
	})
	attendances.records["emp-2"] = []attendance.Attendance{
		record(date(2025, time.June, 13), "09:00", "17:00", 0),
	}
	attendances.failFor = "emp-1"

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	require.Len(t, payslips.created, 1, "healthy employee still processed")
	assert.Equal(t, "emp-2", payslips.created[0].EmployeeID)
}

func TestGenerator_DefaultHourlyRateFallback(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()
	employees.employees[0].HourlyRate = nil

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	require.Len(t, payslips.created, 1)

	// default rate 20: gross = 8*20 + 2*20*1.5 = 220
	assert.True(t, payslips.created[0].GrossPay.Equal(dec("220")),
		"got %s", payslips.created[0].GrossPay)
}

func TestGenerator_ZeroHourlyRateFallsBack(t *testing.T) {
	t.Parallel()
	policies, employees, attendances, payslips, notifier := weeklyFixture()
	zero := decimal.Zero
	employees.employees[0].HourlyRate = &zero

	gen := NewGenerator(policies, employees, attendances, payslips, notifier).
		WithClock(func() time.Time { return payMonday })

	require.NoError(t, gen.Run(context.Background()))
	require.Len(t, payslips.created, 1)
	assert.True(t, payslips.created[0].GrossPay.Equal(dec("220")))
}
