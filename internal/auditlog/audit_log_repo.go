package auditlog

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_log_repo.go -destination=mock/audit_log_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindByResource(ctx context.Context, resourceType, resourceID string) ([]AuditLog, error)
	FindByActor(ctx context.Context, userID string, limit int) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByResource(ctx context.Context, resourceType, resourceID string) ([]AuditLog, error) {
	var rows []AuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ?", resourceType).
		Where("resource_id = ?", resourceID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByActor(ctx context.Context, userID string, limit int) ([]AuditLog, error) {
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var rows []AuditLog
	err := db.Find(&rows).Error
	return rows, err
}
