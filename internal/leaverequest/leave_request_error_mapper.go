package leaverequest

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	leaverequesterrors "leavehub/internal/leaverequest/errors"
)

// mapRepositoryError translates datastore errors into the module's
// sentinels: unique-key collisions become conflicts, foreign-key violations
// become referential errors, missing rows become not-found.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverequesterrors.ErrLeaveRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return leaverequesterrors.ErrDuplicateRequest
		case "23503":
			return leaverequesterrors.ErrUnknownUser
		}
	}

	return err
}
