package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNoRowsUpdated signals a conditional update that matched no rows. For
// status transitions this means another caller finalized the request first.
var ErrNoRowsUpdated = errors.New("no rows updated")

//go:generate mockgen -source=leave_request_repo.go -destination=mock/leave_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDUnscoped(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, f Filters, visibility func(db *gorm.DB) *gorm.DB) ([]LeaveRequest, error)
	FindByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindPending(ctx context.Context, approverID *string) ([]LeaveRequest, error)
	FindActive(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindApprovedInRange(ctx context.Context, visibility func(db *gorm.DB) *gorm.DB, start, end time.Time) ([]LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	TransitionStatus(ctx context.Context, lr *LeaveRequest, allowedFrom []string) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

// FindByIDUnscoped also returns soft-deleted rows; the restore path needs it.
func (r *repository) FindByIDUnscoped(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Unscoped().
		Preload("Owner").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAll(ctx context.Context, f Filters, visibility func(db *gorm.DB) *gorm.DB) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(visibility).
		Preload("Owner")

	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.LeaveType != nil {
		db = db.Where("leave_type = ?", *f.LeaveType)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.ApproverID != nil {
		db = db.Where("approver_id = ?", *f.ApproverID)
	}
	if f.IsHalfDay != nil {
		db = db.Where("is_half_day = ?", *f.IsHalfDay)
	}
	if f.StartDate != nil && f.EndDate != nil {
		db = db.Where("NOT (end_date < ? OR start_date > ?)", *f.StartDate, *f.EndDate)
	}

	var rows []LeaveRequest
	err := db.Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPending(ctx context.Context, approverID *string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("Owner").
		Where("status = ?", StatusPending)
	if approverID != nil {
		db = db.Where("approver_id = ?", *approverID)
	}

	var rows []LeaveRequest
	err := db.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// FindActive returns the requests still affecting a user's calendar:
// soft-deleted rows are excluded by gorm and rejected/cancelled ones here.
func (r *repository) FindActive(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCanceled}).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, visibility func(db *gorm.DB) *gorm.DB, start, end time.Time) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(visibility).
		Preload("Owner").
		Where("status = ?", StatusApproved).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(lr).Error
}

// TransitionStatus persists a status change conditionally on the row still
// being in one of allowedFrom. Zero rows affected means another caller won
// the race; the request is not transitioned twice and the balance is never
// double-charged.
func (r *repository) TransitionStatus(ctx context.Context, lr *LeaveRequest, allowedFrom []string) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", lr.ID).
		Where("status IN ?", allowedFrom).
		Updates(map[string]interface{}{
			"status":            lr.Status,
			"approver_id":       lr.ApproverID,
			"approved_at":       lr.ApprovedAt,
			"rejected_at":       lr.RejectedAt,
			"rejection_reason":  lr.RejectionReason,
			"approval_comments": lr.ApprovalComments,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Restore(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Unscoped().
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("deleted_at IS NOT NULL").
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}
