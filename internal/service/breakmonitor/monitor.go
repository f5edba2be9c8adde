package breakmonitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
)

// warnRatio is the fraction of the break quota at which a warning fires.
const warnRatio = 0.8

// DefaultDedupeWindow is the lookback over existing break notifications
// used to suppress repeat emission while an episode stays open.
const DefaultDedupeWindow = 5 * time.Minute

// Monitor polls open break episodes against per-break-type duration quotas
// and emits at most one warning and one violation notification per episode
// per dedupe window. There is no persisted per-episode state; the
// notification history itself is the state.
type Monitor struct {
	attendances  attendance.AttendanceRepository
	employees    employee.EmployeeRepository
	breakTypes   policy.BreakTypeRepository
	notifier     notification.Service
	dedupeWindow time.Duration

	now func() time.Time
}

func NewMonitor(
	attendances attendance.AttendanceRepository,
	employees employee.EmployeeRepository,
	breakTypes policy.BreakTypeRepository,
	notifier notification.Service,
	dedupeWindow time.Duration,
) *Monitor {
	if dedupeWindow <= 0 {
		dedupeWindow = DefaultDedupeWindow
	}
	return &Monitor{
		attendances:  attendances,
		employees:    employees,
		breakTypes:   breakTypes,
		notifier:     notifier,
		dedupeWindow: dedupeWindow,
		now:          time.Now,
	}
}

// WithClock substitutes the wall clock, for tests.
func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

// Poll runs one monitoring pass over today's records with an open break.
// Per-episode failures are logged and skipped so one bad record never
// stalls the rest of the pass.
func (m *Monitor) Poll(ctx context.Context) error {
	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	records, err := m.attendances.ListWithOpenBreak(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open breaks: %w", err)
	}

	for _, rec := range records {
		if err := m.checkRecord(ctx, rec, now); err != nil {
			slog.Error("Break check failed",
				"attendance_id", rec.ID, "employee_id", rec.EmployeeID, "error", err)
		}
	}
	return nil
}

func (m *Monitor) checkRecord(ctx context.Context, rec attendance.Attendance, now time.Time) error {
	episode := rec.OpenBreak()
	if episode == nil {
		return nil
	}

	emp, err := m.employees.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}
	if emp.UserID == nil {
		return nil
	}

	breakType, err := m.breakTypes.GetByID(ctx, episode.BreakTypeID, rec.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to load break type: %w", err)
	}
	if !breakType.IsActive || breakType.MaxDurationMinutes <= 0 {
		return nil
	}

	maxDuration := breakType.MaxDuration()
	elapsed := now.Sub(episode.Start)
	warnAt := time.Duration(float64(maxDuration) * warnRatio)
	if elapsed < warnAt {
		return nil
	}

	// One notice per episode per window: any recent break notice for this
	// user suppresses this poll entirely.
	recent, err := m.notifier.HasRecentByKinds(ctx, *emp.UserID, notification.BreakNoticeKinds(), m.dedupeWindow)
	if err != nil {
		return fmt.Errorf("failed to check recent notifications: %w", err)
	}
	if recent {
		return nil
	}

	if elapsed >= maxDuration {
		return m.notifyViolation(ctx, emp, breakType, elapsed-maxDuration)
	}
	return m.notifyWarning(ctx, emp, breakType, maxDuration-elapsed)
}

func (m *Monitor) notifyWarning(ctx context.Context, emp employee.Employee, bt policy.BreakTypeConfig, remaining time.Duration) error {
	minutes := int(remaining.Round(time.Minute) / time.Minute)
	return m.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   emp.CompanyID,
		RecipientID: *emp.UserID,
		Kind:        notification.KindBreakWarning,
		Title:       "Break Ending Soon",
		Message:     fmt.Sprintf("Your %s ends in about %d minutes", bt.DisplayName, minutes),
		Data: map[string]interface{}{
			"break_type":        bt.ID,
			"remaining_minutes": minutes,
		},
		PushToken: emp.PushToken,
	})
}

func (m *Monitor) notifyViolation(ctx context.Context, emp employee.Employee, bt policy.BreakTypeConfig, overage time.Duration) error {
	minutes := int(overage.Round(time.Minute) / time.Minute)
	return m.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   emp.CompanyID,
		RecipientID: *emp.UserID,
		Kind:        notification.KindBreakViolation,
		Title:       "Break Limit Exceeded",
		Message:     fmt.Sprintf("Your %s exceeded its limit by %d minutes", bt.DisplayName, minutes),
		Data: map[string]interface{}{
			"break_type":      bt.ID,
			"overage_minutes": minutes,
		},
		PushToken: emp.PushToken,
	})
}
