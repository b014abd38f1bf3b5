package leavebalance_test

import (
	"context"
	"database/sql"
	"testing"

	"leavehub/internal/auditlog"
	"leavehub/internal/leavebalance"
	leavebalanceerrors "leavehub/internal/leavebalance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	upsertFn             func(ctx context.Context, b *leavebalance.LeaveBalance) error
	findByIDFn           func(ctx context.Context, id string) (*leavebalance.LeaveBalance, error)
	findByUserYearFn     func(ctx context.Context, userID string, year int) ([]leavebalance.LeaveBalance, error)
	findByUserTypeYearFn func(ctx context.Context, userID, leaveType string, year int) (*leavebalance.LeaveBalance, error)
	updateFn             func(ctx context.Context, b *leavebalance.LeaveBalance) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository {
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	return nil
}

func (f *fakeBalanceRepository) Upsert(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*leavebalance.LeaveBalance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByUserYear(ctx context.Context, userID string, year int) ([]leavebalance.LeaveBalance, error) {
	if f.findByUserYearFn != nil {
		return f.findByUserYearFn(ctx, userID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByUserTypeYear(ctx context.Context, userID, leaveType string, year int) (*leavebalance.LeaveBalance, error) {
	if f.findByUserTypeYearFn != nil {
		return f.findByUserTypeYearFn(ctx, userID, leaveType, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

type fakeBalanceRecorder struct {
	recordFn func(ctx context.Context, entry auditlog.Entry) (auditlog.AuditLog, error)
}

func (f *fakeBalanceRecorder) Record(ctx context.Context, entry auditlog.Entry) (auditlog.AuditLog, error) {
	if f.recordFn != nil {
		return f.recordFn(ctx, entry)
	}
	return auditlog.AuditLog{}, nil
}
func (f *fakeBalanceRecorder) Log(ctx context.Context, entry auditlog.Entry) auditlog.AuditLog {
	row, _ := f.Record(ctx, entry)
	return row
}
func (f *fakeBalanceRecorder) ListByResource(ctx context.Context, resourceType, resourceID string) ([]auditlog.AuditLog, error) {
	return nil, nil
}
func (f *fakeBalanceRecorder) ListByActor(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error) {
	return nil, nil
}

func setupBalanceServiceTest(t *testing.T) (leavebalance.Service, *fakeBalanceRepository, *fakeBalanceRecorder) {
	t.Helper()
	repo := &fakeBalanceRepository{}
	audit := &fakeBalanceRecorder{}
	return leavebalance.NewService(repo, audit), repo, audit
}

func TestBalanceService_ApplyApproval(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success charges and recomputes remaining", func(t *testing.T) {
		svc, repo, _ := setupBalanceServiceTest(t)

		repo.findByUserTypeYearFn = func(ctx context.Context, uid, leaveType string, year int) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{
				ID:             uuid.New(),
				UserID:         userID,
				LeaveType:      "VACATION",
				Year:           2027,
				TotalAllowance: 12,
				UsedDays:       4,
				RemainingDays:  8,
			}, nil
		}

		var updated *leavebalance.LeaveBalance
		repo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updated = b
			return nil
		}

		err := svc.ApplyApproval(ctx, userID.String(), "VACATION", 2027, 3)

		assert.NoError(t, err)
		if assert.NotNil(t, updated) {
			assert.Equal(t, float64(7), updated.UsedDays)
			assert.Equal(t, float64(5), updated.RemainingDays)
		}
	})

	t.Run("missing row is a no-op", func(t *testing.T) {
		svc, repo, _ := setupBalanceServiceTest(t)

		repo.findByUserTypeYearFn = func(ctx context.Context, uid, leaveType string, year int) (*leavebalance.LeaveBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		updateCalled := false
		repo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updateCalled = true
			return nil
		}

		err := svc.ApplyApproval(ctx, userID.String(), "UNPAID", 2027, 2)

		assert.NoError(t, err)
		assert.False(t, updateCalled)
	})
}

func TestBalanceService_CarryOver(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	actorID := uuid.New().String()

	t.Run("success folds remainder into next year", func(t *testing.T) {
		svc, repo, audit := setupBalanceServiceTest(t)

		repo.findByUserYearFn = func(ctx context.Context, uid string, year int) ([]leavebalance.LeaveBalance, error) {
			assert.Equal(t, 2026, year)
			return []leavebalance.LeaveBalance{
				{
					UserID:         userID,
					LeaveType:      "VACATION",
					Year:           2026,
					TotalAllowance: 10,
					UsedDays:       7,
					RemainingDays:  3,
				},
			}, nil
		}

		var upserted *leavebalance.LeaveBalance
		repo.upsertFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			upserted = b
			return nil
		}

		audited := false
		audit.recordFn = func(ctx context.Context, entry auditlog.Entry) (auditlog.AuditLog, error) {
			audited = true
			assert.Equal(t, auditlog.ActionCarryOverBalances, entry.Action)
			return auditlog.AuditLog{}, nil
		}

		rows, err := svc.CarryOver(ctx, actorID, userID.String(), 2026, 2027)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		if assert.NotNil(t, upserted) {
			assert.Equal(t, 2027, upserted.Year)
			assert.Equal(t, float64(13), upserted.TotalAllowance)
			assert.Equal(t, float64(0), upserted.UsedDays)
			assert.Equal(t, float64(3), upserted.CarriedOver)
			assert.Equal(t, float64(13), upserted.RemainingDays)
		}
		assert.True(t, audited)
	})

	t.Run("exhausted balance is skipped", func(t *testing.T) {
		svc, repo, _ := setupBalanceServiceTest(t)

		repo.findByUserYearFn = func(ctx context.Context, uid string, year int) ([]leavebalance.LeaveBalance, error) {
			return []leavebalance.LeaveBalance{
				{UserID: userID, LeaveType: "SICK", Year: 2026, TotalAllowance: 5, UsedDays: 5, RemainingDays: 0},
			}, nil
		}

		upsertCalled := false
		repo.upsertFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			upsertCalled = true
			return nil
		}

		rows, err := svc.CarryOver(ctx, actorID, userID.String(), 2026, 2027)

		assert.NoError(t, err)
		assert.Empty(t, rows)
		assert.False(t, upsertCalled)
	})

	t.Run("negative year range", func(t *testing.T) {
		svc, _, _ := setupBalanceServiceTest(t)

		_, err := svc.CarryOver(ctx, actorID, userID.String(), 2027, 2027)

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidYearRange)
	})
}

func TestBalanceService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("negative usage rejected", func(t *testing.T) {
		svc, repo, _ := setupBalanceServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{ID: uuid.New(), TotalAllowance: 10}, nil
		}

		used := -1.0
		_, err := svc.Update(ctx, uuid.New().String(), leavebalance.UpdateBalanceRequest{UsedDays: &used})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrNegativeUsage)
	})

	t.Run("success recomputes remaining", func(t *testing.T) {
		svc, repo, _ := setupBalanceServiceTest(t)

		repo.findByIDFn = func(ctx context.Context, id string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{ID: uuid.New(), TotalAllowance: 10, UsedDays: 2, RemainingDays: 8}, nil
		}

		total := 15.0
		resp, err := svc.Update(ctx, uuid.New().String(), leavebalance.UpdateBalanceRequest{TotalAllowance: &total})

		assert.NoError(t, err)
		assert.Equal(t, float64(13), resp.RemainingDays)
	})
}

func TestBalanceService_Summary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, repo, _ := setupBalanceServiceTest(t)
	repo.findByUserYearFn = func(ctx context.Context, uid string, year int) ([]leavebalance.LeaveBalance, error) {
		return []leavebalance.LeaveBalance{
			{UserID: userID, LeaveType: "VACATION", RemainingDays: 8, UsedDays: 4},
			{UserID: userID, LeaveType: "SICK", RemainingDays: 5, UsedDays: 1},
		}, nil
	}

	summary, err := svc.Summary(ctx, userID.String(), 2027)

	assert.NoError(t, err)
	assert.Equal(t, float64(13), summary.TotalRemaining)
	assert.Equal(t, float64(5), summary.TotalUsed)
}
