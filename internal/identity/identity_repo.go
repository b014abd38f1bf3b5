package identity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	TeamMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error)
	IsManagerOf(ctx context.Context, managerID, userID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) TeamMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("manager_id = ?", managerID).
		Where("id <> ?", managerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) IsManagerOf(ctx context.Context, managerID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count > 0, err
}
