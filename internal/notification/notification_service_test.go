package notification_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leavehub/internal/messaging/kafka"
	"leavehub/internal/notification"
	notificationerrors "leavehub/internal/notification/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	createFn      func(ctx context.Context, n *notification.Notification) error
	findByIDFn    func(ctx context.Context, id string) (*notification.Notification, error)
	findByUserFn  func(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error)
	markReadFn    func(ctx context.Context, id string, readAt time.Time) error
	deleteFn      func(ctx context.Context, id string) error
	countUnreadFn func(ctx context.Context, userID string) (int64, error)
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository {
	return f
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id, readAt)
	}
	return nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string, readAt time.Time) error {
	return nil
}

func (f *fakeNotificationRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

type fakeOutboxRepository struct {
	enqueueFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Enqueue(ctx context.Context, event kafka.OutboxEvent) error {
	if f.enqueueFn != nil {
		return f.enqueueFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) Due(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkPublished(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) ScheduleRetry(ctx context.Context, id string, reason string) error {
	return nil
}

type dispatcherDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service notification.Dispatcher
	repo    *fakeNotificationRepository
	outbox  *fakeOutboxRepository
}

func setupDispatcherTest(t *testing.T) *dispatcherDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeNotificationRepository{}
	outbox := &fakeOutboxRepository{}
	svc := notification.NewDispatcher(db, repo, outbox)

	return &dispatcherDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success writes row and outbox event in one tx", func(t *testing.T) {
		deps := setupDispatcherTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *notification.Notification
		deps.repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			created = n
			return nil
		}

		var queued *kafka.OutboxEvent
		deps.outbox.enqueueFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = &event
			return nil
		}

		resp, err := deps.service.Dispatch(ctx, notification.Dispatch{
			UserID:  userID,
			Title:   "Leave request approved",
			Message: "Your VACATION request was approved.",
			Type:    notification.TypeSuccess,
		})

		assert.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.False(t, resp.IsRead)
		if assert.NotNil(t, created) {
			assert.Equal(t, notification.TypeSuccess, created.Type)
		}
		if assert.NotNil(t, queued) {
			assert.Equal(t, "NOTIFICATION_DISPATCHED", queued.EventType)
			assert.Equal(t, notification.DispatchedTopic, queued.Topic)
			assert.Equal(t, created.ID.String(), queued.AggregateID)
			assert.Equal(t, kafka.OutboxStatusPending, queued.Status)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative outbox failure rolls back", func(t *testing.T) {
		deps := setupDispatcherTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.outbox.enqueueFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return sql.ErrConnDone
		}

		_, err := deps.service.Dispatch(ctx, notification.Dispatch{
			UserID:  userID,
			Title:   "x",
			Message: "y",
			Type:    notification.TypeInfo,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown type", func(t *testing.T) {
		deps := setupDispatcherTest(t)
		defer deps.db.Close()

		_, err := deps.service.Dispatch(ctx, notification.Dispatch{
			UserID: userID,
			Type:   "LOUD",
		})

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationType)
	})
}

func TestDispatcher_MarkRead(t *testing.T) {
	ctx := context.Background()
	recipient := uuid.New()

	t.Run("negative not the recipient", func(t *testing.T) {
		deps := setupDispatcherTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: uuid.New(), UserID: recipient}, nil
		}

		_, err := deps.service.MarkRead(ctx, uuid.New().String(), uuid.New().String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotRecipient)
	})

	t.Run("success sets read state", func(t *testing.T) {
		deps := setupDispatcherTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: uuid.New(), UserID: recipient}, nil
		}

		resp, err := deps.service.MarkRead(ctx, recipient.String(), uuid.New().String())

		assert.NoError(t, err)
		assert.True(t, resp.IsRead)
		assert.NotNil(t, resp.ReadAt)
	})
}
