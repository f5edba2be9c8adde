package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error

	// CountByKindsSince counts a recipient's notifications of the given
	// kinds created at or after since. Backs the break monitor's dedupe
	// window.
	CountByKindsSince(ctx context.Context, recipientID string, kinds []NotificationKind, since time.Time) (int, error)
}
