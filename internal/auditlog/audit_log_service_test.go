package auditlog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"leavehub/internal/auditlog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	createFn         func(ctx context.Context, entry *auditlog.AuditLog) error
	findByResourceFn func(ctx context.Context, resourceType, resourceID string) ([]auditlog.AuditLog, error)
}

func (f *fakeAuditRepository) Create(ctx context.Context, entry *auditlog.AuditLog) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeAuditRepository) FindByResource(ctx context.Context, resourceType, resourceID string) ([]auditlog.AuditLog, error) {
	if f.findByResourceFn != nil {
		return f.findByResourceFn(ctx, resourceType, resourceID)
	}
	return nil, nil
}

func (f *fakeAuditRepository) FindByActor(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error) {
	return nil, nil
}

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	resourceID := uuid.New().String()

	t.Run("success builds row from entry", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		var created *auditlog.AuditLog
		repo.createFn = func(ctx context.Context, entry *auditlog.AuditLog) error {
			created = entry
			return nil
		}

		rec := auditlog.NewRecorder(repo)
		_, err := rec.Record(ctx, auditlog.Entry{
			ActorID:      actorID,
			Action:       auditlog.ActionApproveLeaveRequest,
			ResourceType: "leave_request",
			ResourceID:   resourceID,
			Details:      map[string]any{"total_days": 3},
		})

		assert.NoError(t, err)
		if assert.NotNil(t, created) {
			assert.Equal(t, uuid.MustParse(actorID), *created.UserID)
			assert.Equal(t, uuid.MustParse(resourceID), *created.ResourceID)
			assert.Equal(t, auditlog.ActionApproveLeaveRequest, created.Action)

			var details map[string]any
			assert.NoError(t, json.Unmarshal(created.Details, &details))
			assert.Equal(t, float64(3), details["total_days"])
		}
	})

	t.Run("empty actor and resource ids stay null", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		var created *auditlog.AuditLog
		repo.createFn = func(ctx context.Context, entry *auditlog.AuditLog) error {
			created = entry
			return nil
		}

		rec := auditlog.NewRecorder(repo)
		_, err := rec.Record(ctx, auditlog.Entry{
			Action:       auditlog.ActionServerShutdown,
			ResourceType: "server",
		})

		assert.NoError(t, err)
		if assert.NotNil(t, created) {
			assert.Nil(t, created.UserID)
			assert.Nil(t, created.ResourceID)
		}
	})

	t.Run("negative malformed actor id", func(t *testing.T) {
		rec := auditlog.NewRecorder(&fakeAuditRepository{})

		_, err := rec.Record(ctx, auditlog.Entry{
			ActorID: "not-a-uuid",
			Action:  auditlog.ActionCreateLeaveRequest,
		})

		assert.Error(t, err)
	})
}

func TestRecorder_Log(t *testing.T) {
	ctx := context.Background()

	t.Run("sink outage yields synthetic failed record", func(t *testing.T) {
		repo := &fakeAuditRepository{
			createFn: func(ctx context.Context, entry *auditlog.AuditLog) error {
				return errors.New("sink down")
			},
		}

		rec := auditlog.NewRecorder(repo)
		row := rec.Log(ctx, auditlog.Entry{
			ActorID:      uuid.New().String(),
			Action:       auditlog.ActionDeleteLeaveRequest,
			ResourceType: "leave_request",
			Details:      map[string]any{"status": "PENDING"},
		})

		assert.Equal(t, uuid.Nil, row.ID)
		assert.Equal(t, auditlog.ActionDeleteLeaveRequest, row.Action)

		var details map[string]any
		assert.NoError(t, json.Unmarshal(row.Details, &details))
		assert.Equal(t, "sink down", details["error"])
	})

	t.Run("success is just a record", func(t *testing.T) {
		rec := auditlog.NewRecorder(&fakeAuditRepository{})

		row := rec.Log(ctx, auditlog.Entry{
			Action:       auditlog.ActionServerShutdown,
			ResourceType: "server",
		})

		assert.Equal(t, auditlog.ActionServerShutdown, row.Action)
	})
}
