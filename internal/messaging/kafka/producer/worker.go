package producer

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"leavehub/internal/messaging/kafka"
)

const defaultBatchSize = 50

// Worker drains the outbox table to Kafka. A publish failure schedules the
// event for retry; the loop itself only stops when its context is cancelled.
type Worker struct {
	repo     kafka.OutboxRepository
	writer   *kafkago.Writer
	logger   *zap.Logger
	interval time.Duration
}

func NewWorker(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Worker{
		repo:     repo,
		writer:   writer,
		logger:   logger.Named("outbox.worker"),
		interval: interval,
	}
}

func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.flush(ctx); err != nil {
				w.logger.Error("outbox flush failed", zap.Error(err))
			}
		}
	}
}

func (w *Worker) flush(ctx context.Context) error {
	events, err := w.repo.Due(ctx, defaultBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	w.logger.Debug("publishing outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := w.writer.WriteMessages(ctx, buildMessage(event)); err != nil {
			w.logger.Error("publish failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Int("attempt", event.RetryCount+1),
				zap.Error(err),
			)
			_ = w.repo.ScheduleRetry(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkPublished(ctx, event.ID); err != nil {
			// The write went out; the row stays due and the event will be
			// published again, so consumers must dedupe on event id.
			w.logger.Error("mark published failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("outbox event published",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}
