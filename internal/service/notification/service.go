package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/notification"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo       notification.Repository
	dispatcher notification.Dispatcher
	config     Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}

	now func() time.Time
}

// NewNotificationService creates a notification service with background
// workers that batch-insert records and then push best-effort.
func NewNotificationService(repo notification.Repository, dispatcher notification.Dispatcher, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:       repo,
		dispatcher: dispatcher,
		config:     cfg,
		queue:      make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh:     make(chan struct{}),
		now:        time.Now,
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the queue, batch-inserts, then dispatches pushes. Dispatch
// happens only after the records are durably created; a send failure is
// logged and never undoes the insert.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = s.newNotification(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Notification batch insert failed", "worker", id, "error", err)
		} else {
			slog.Debug("Notification batch inserted", "worker", id, "count", len(notifications))
			for i, req := range batch {
				s.push(ctx, req, notifications[i])
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			flush()
			return
		}
	}
}

// QueueNotification queues a notification for async processing
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, fall back to a direct insert
		return s.directInsert(ctx, req)
	}
}

// HasRecentByKinds reports whether the recipient received any notification
// of the given kinds within the lookback window.
func (s *service) HasRecentByKinds(ctx context.Context, recipientID string, kinds []notification.NotificationKind, within time.Duration) (bool, error) {
	count, err := s.repo.CountByKindsSince(ctx, recipientID, kinds, s.now().Add(-within))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// directInsert inserts a notification synchronously when the queue is full.
func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := s.newNotification(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.push(ctx, req, n)
	return nil
}

func (s *service) push(ctx context.Context, req notification.CreateNotificationRequest, n *notification.Notification) {
	if s.dispatcher == nil || req.PushToken == nil {
		return
	}
	if err := s.dispatcher.Send(ctx, *req.PushToken, n.Title, n.Message, n.Data); err != nil {
		slog.Error("Push dispatch failed", "notification_id", n.ID, "error", err)
	}
}

func (s *service) newNotification(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		RecipientID: req.RecipientID,
		Kind:        req.Kind,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
		CreatedAt:   s.now(),
	}
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("Notification service stopped")
}
