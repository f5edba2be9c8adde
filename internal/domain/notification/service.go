package notification

import (
	"context"
	"time"
)

// Service defines the notification service interface
type Service interface {
	// QueueNotification queues a notification for async persistence and
	// best-effort push dispatch.
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	// HasRecentByKinds reports whether the recipient received any
	// notification of the given kinds within the lookback window.
	HasRecentByKinds(ctx context.Context, recipientID string, kinds []NotificationKind, within time.Duration) (bool, error)

	Stop()
}

// Dispatcher delivers a push notification to a device token. Dispatch is
// best-effort: a failure must not roll back the notification record.
type Dispatcher interface {
	Send(ctx context.Context, token, title, body string, data map[string]interface{}) error
}
