package notification

import (
	"time"
)

// NotificationKind represents the kind of notification
type NotificationKind string

const (
	KindPayslipGenerated NotificationKind = "payslip_generated"
	KindBreakWarning     NotificationKind = "break_warning"
	KindBreakViolation   NotificationKind = "break_violation"
)

// BreakNoticeKinds are the kinds consulted by the break monitor's
// dedupe lookback.
func BreakNoticeKinds() []NotificationKind {
	return []NotificationKind{KindBreakWarning, KindBreakViolation}
}

// Notification represents a notification record. Created by the scheduler,
// never mutated by it.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	Kind        NotificationKind
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
