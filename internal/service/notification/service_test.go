package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/notification"
)

type fakeRepo struct {
	mu      sync.Mutex
	created []*notification.Notification
	count   int
	since   time.Time
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, notifications...)
	return nil
}

func (f *fakeRepo) CountByKindsSince(ctx context.Context, recipientID string, kinds []notification.NotificationKind, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.since = since
	return f.count, nil
}

func (f *fakeRepo) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	tokens []string
	err    error
}

func (f *fakeDispatcher) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f.err
}

func (f *fakeDispatcher) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

func strPtr(s string) *string { return &s }

func request(token *string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		CompanyID:   "co-1",
		RecipientID: "user-1",
		Kind:        notification.KindPayslipGenerated,
		Title:       "Payslip Ready",
		Message:     "Your payslip has been generated",
		Data:        map[string]interface{}{"net_pay": "99"},
		PushToken:   token,
	}
}

func TestService_QueuedNotificationIsInsertedAndPushed(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	dispatcher := &fakeDispatcher{}
	svc := NewNotificationService(repo, dispatcher, Config{FlushInterval: 10 * time.Millisecond})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), request(strPtr("token-1"))))

	assert.Eventually(t, func() bool { return repo.len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return dispatcher.sent() == 1 }, time.Second, 5*time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	created := repo.created[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.RecipientID)
	assert.Equal(t, notification.KindPayslipGenerated, created.Kind)
}

func TestService_PushFailureDoesNotDropRecord(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	dispatcher := &fakeDispatcher{err: assert.AnError}
	svc := NewNotificationService(repo, dispatcher, Config{FlushInterval: 10 * time.Millisecond})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), request(strPtr("token-1"))))

	assert.Eventually(t, func() bool { return repo.len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestService_NoPushTokenSkipsDispatch(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	dispatcher := &fakeDispatcher{}
	svc := NewNotificationService(repo, dispatcher, Config{FlushInterval: 10 * time.Millisecond})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), request(nil)))

	assert.Eventually(t, func() bool { return repo.len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, dispatcher.sent())
}

func TestService_StopFlushesPendingBatch(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil, Config{FlushInterval: time.Minute})

	require.NoError(t, svc.QueueNotification(context.Background(), request(nil)))
	require.NoError(t, svc.QueueNotification(context.Background(), request(nil)))
	svc.Stop()

	assert.Equal(t, 2, repo.len(), "pending batch must be flushed on shutdown")
}

func TestService_BatchSizeTriggersFlush(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil, Config{BatchSize: 2, FlushInterval: time.Minute, WorkerCount: 1})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), request(nil)))
	require.NoError(t, svc.QueueNotification(context.Background(), request(nil)))

	assert.Eventually(t, func() bool { return repo.len() == 2 }, time.Second, 5*time.Millisecond)
}

func TestService_HasRecentByKinds(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil, Config{})
	defer svc.Stop()

	recent, err := svc.HasRecentByKinds(context.Background(), "user-1", notification.BreakNoticeKinds(), 5*time.Minute)
	require.NoError(t, err)
	assert.False(t, recent)

	repo.count = 1
	recent, err = svc.HasRecentByKinds(context.Background(), "user-1", notification.BreakNoticeKinds(), 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, recent)
}

func TestService_LookbackComputedFromClock(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil, Config{})
	defer svc.Stop()

	fixed := time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	_, err := svc.HasRecentByKinds(context.Background(), "user-1", notification.BreakNoticeKinds(), 5*time.Minute)
	require.NoError(t, err)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.True(t, repo.since.Equal(fixed.Add(-5*time.Minute)), "got %s", repo.since)
}
