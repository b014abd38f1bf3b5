package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"leavehub/internal/leaverequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupLeaveRequestRepoTest(t *testing.T) (leaverequest.Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return leaverequest.NewRepository(gormDB), mock, func() { db.Close() }
}

func TestLeaveRequestRepository_FindActive(t *testing.T) {
	t.Run("excludes rejected, cancelled and soft-deleted rows", func(t *testing.T) {
		repo, mock, cleanup := setupLeaveRequestRepoTest(t)
		defer cleanup()

		userID := uuid.New().String()
		rowID := uuid.New().String()

		mock.ExpectQuery(
			`SELECT \* FROM "leave_requests" WHERE user_id = \$1 `+
				`AND status NOT IN \(\$2,\$3\) `+
				`AND "leave_requests"\."deleted_at" IS NULL ORDER BY start_date ASC`,
		).
			WithArgs(userID, leaverequest.StatusRejected, leaverequest.StatusCanceled).
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "user_id", "leave_type", "status", "start_date", "end_date", "total_days"},
			).AddRow(
				rowID, userID, leaverequest.TypeVacation, leaverequest.StatusApproved,
				time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2027, 3, 3, 0, 0, 0, 0, time.UTC),
				3.0,
			))

		rows, err := repo.FindActive(context.Background(), userID)

		assert.NoError(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, rowID, rows[0].ID.String())
			assert.Equal(t, leaverequest.StatusApproved, rows[0].Status)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
