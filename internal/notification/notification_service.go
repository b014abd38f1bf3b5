package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leavehub/internal/messaging/kafka"
	notificationerrors "leavehub/internal/notification/errors"
	"leavehub/internal/shared/contextutil"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Dispatcher interface {
	// Dispatch persists a notification and queues it for fan-out. Callers on
	// the lifecycle path invoke it as a secondary effect; its error never
	// reaches the end user there.
	Dispatch(ctx context.Context, d Dispatch) (NotificationResponse, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, callerID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, callerID string) error
	Delete(ctx context.Context, callerID, id string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type dispatcher struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewDispatcher(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &dispatcher{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *dispatcher) Dispatch(ctx context.Context, d Dispatch) (NotificationResponse, error) {
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidUserID
	}
	if !isValidType(d.Type) {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationType
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   d.Title,
		Message: d.Message,
		Type:    d.Type,
	}
	if d.RelatedID != nil {
		related, err := uuid.Parse(*d.RelatedID)
		if err != nil {
			return NotificationResponse{}, notificationerrors.ErrInvalidUserID
		}
		n.RelatedID = &related
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("dispatch begin tx failed", zap.Error(err))
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, n); err != nil {
		s.logger.Error("dispatch persist failed",
			zap.String("user_id", d.UserID),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}

	payload, err := json.Marshal(mapToResponse(*n))
	if err != nil {
		return NotificationResponse{}, err
	}
	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   n.ID.String(),
		EventType:     "NOTIFICATION_DISPATCHED",
		Topic:         DispatchedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Enqueue(ctx, event); err != nil {
		s.logger.Error("dispatch outbox enqueue failed",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("dispatch commit failed", zap.Error(err))
		return NotificationResponse{}, err
	}

	s.logger.Info("notification dispatched",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", d.UserID),
		zap.String("type", d.Type),
	)
	return mapToResponse(*n), nil
}

func (s *dispatcher) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *dispatcher) MarkRead(ctx context.Context, callerID, id string) (NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}
	if n.UserID.String() != callerID {
		return NotificationResponse{}, notificationerrors.ErrNotRecipient
	}

	now := time.Now().UTC()
	if err := s.repo.MarkRead(ctx, id, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	n.IsRead = true
	n.ReadAt = &now
	return mapToResponse(*n), nil
}

func (s *dispatcher) MarkAllRead(ctx context.Context, callerID string) error {
	return s.repo.MarkAllRead(ctx, callerID, time.Now().UTC())
}

func (s *dispatcher) Delete(ctx context.Context, callerID, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	if n.UserID.String() != callerID {
		return notificationerrors.ErrNotRecipient
	}

	return s.repo.Delete(ctx, id)
}

func (s *dispatcher) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func isValidType(v string) bool {
	switch v {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	if n.RelatedID != nil {
		v := n.RelatedID.String()
		resp.RelatedID = &v
	}
	return resp
}
