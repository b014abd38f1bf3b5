package kafka

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	OutboxStatusFailed    = "failed"
)

// maxPublishAttempts caps retries; rows past the cap stay failed and need
// manual intervention.
const maxPublishAttempts = 10

// OutboxEvent is a to-be-published record written in the same transaction as
// the state change that triggered it. A worker drains the table to Kafka, so
// an unreachable broker never fails the primary operation.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	// Enqueue writes the event; call it on the same tx as the primary write.
	Enqueue(ctx context.Context, event OutboxEvent) error
	// Due returns pending and retry-due failed events, oldest first.
	Due(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id string) error
	// ScheduleRetry bumps the retry counter and pushes next_retry_at out with
	// a capped linear backoff.
	ScheduleRetry(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Enqueue(ctx context.Context, event OutboxEvent) error {
	if event.ID == "" || event.Topic == "" {
		return errors.New("outbox event needs an id and a topic")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox event needs a payload")
	}

	_, err := r.execer().ExecContext(ctx,
		`INSERT INTO outbox_events
			(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

func (r *outboxRepository) Due(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id::text,
			event_type, topic, payload, status, retry_count,
			COALESCE(next_retry_at, created_at)
		 FROM outbox_events
		 WHERE status IN ($1, $2)
			AND retry_count < $3
			AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		 ORDER BY created_at
		 LIMIT $4`,
		OutboxStatusPending, OutboxStatusFailed, maxPublishAttempts, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount,
			&e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkPublished(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events
		 SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, OutboxStatusPublished,
	)
	return err
}

func (r *outboxRepository) ScheduleRetry(ctx context.Context, id string, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events
		 SET status = $2,
			retry_count = retry_count + 1,
			error_message = LEFT($3, 500),
			next_retry_at = NOW() + (LEAST(retry_count + 1, 8) * INTERVAL '30 seconds'),
			updated_at = NOW()
		 WHERE id = $1`,
		id, OutboxStatusFailed, reason,
	)
	return err
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
