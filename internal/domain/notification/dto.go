package notification

// CreateNotificationRequest represents a request to create a notification.
// PushToken, when set, triggers a best-effort push dispatch after the
// record is durably created.
type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	Kind        NotificationKind
	Title       string
	Message     string
	Data        map[string]interface{}
	PushToken   *string
}
