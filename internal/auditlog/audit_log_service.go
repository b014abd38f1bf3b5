package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is the write-side payload. ActorID and ResourceID are string form so
// callers don't have to round-trip uuids.
type Entry struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
}

//go:generate mockgen -source=audit_log_service.go -destination=mock/audit_log_service_mock.go -package=mock
type Recorder interface {
	// Record persists an entry and propagates failures. Use it when the audit
	// write is the requested operation itself.
	Record(ctx context.Context, entry Entry) (AuditLog, error)
	// Log persists an entry best-effort. On a sink outage it returns a
	// synthetic failed record instead of an error so callers that display the
	// result never crash on an audit outage.
	Log(ctx context.Context, entry Entry) AuditLog
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]AuditLog, error)
	ListByActor(ctx context.Context, userID string, limit int) ([]AuditLog, error)
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("auditlog.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Record(ctx context.Context, entry Entry) (AuditLog, error) {
	row, err := r.buildRow(entry)
	if err != nil {
		return AuditLog{}, err
	}

	if err := r.repo.Create(ctx, &row); err != nil {
		r.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("resource_id", entry.ResourceID),
			zap.Error(err),
		)
		return AuditLog{}, err
	}
	return row, nil
}

func (r *recorder) Log(ctx context.Context, entry Entry) AuditLog {
	row, err := r.Record(ctx, entry)
	if err == nil {
		return row
	}

	// Synthetic failed record: zero ID marks it as never persisted.
	details, _ := json.Marshal(map[string]any{
		"error":    err.Error(),
		"original": entry.Details,
	})
	synthetic, _ := r.buildRow(entry)
	synthetic.ID = uuid.Nil
	synthetic.Details = details
	synthetic.CreatedAt = time.Now().UTC()
	return synthetic
}

func (r *recorder) ListByResource(ctx context.Context, resourceType, resourceID string) ([]AuditLog, error) {
	return r.repo.FindByResource(ctx, resourceType, resourceID)
}

func (r *recorder) ListByActor(ctx context.Context, userID string, limit int) ([]AuditLog, error) {
	return r.repo.FindByActor(ctx, userID, limit)
}

func (r *recorder) buildRow(entry Entry) (AuditLog, error) {
	row := AuditLog{
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
	}

	if entry.ActorID != "" {
		actor, err := uuid.Parse(entry.ActorID)
		if err != nil {
			return AuditLog{}, err
		}
		row.UserID = &actor
	}
	if entry.ResourceID != "" {
		res, err := uuid.Parse(entry.ResourceID)
		if err != nil {
			return AuditLog{}, err
		}
		row.ResourceID = &res
	}
	if entry.Details != nil {
		details, err := json.Marshal(entry.Details)
		if err != nil {
			return AuditLog{}, err
		}
		row.Details = details
	}
	return row, nil
}
