package leavebalanceerrors

import (
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidYearRange = apperror.New(
		apperror.CodeInvalidInput,
		"to_year must be after from_year",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrDuplicateBalance = apperror.New(
		apperror.CodeConflict,
		"a balance for this user, leave type and year already exists",
		http.StatusConflict,
	)
	ErrUnknownUser = apperror.New(
		apperror.CodeReferential,
		"user does not exist",
		http.StatusBadRequest,
	)
	ErrNegativeUsage = apperror.New(
		apperror.CodeInvalidInput,
		"used_days cannot be negative",
		http.StatusBadRequest,
	)
	ErrNotBalanceOwner = apperror.New(
		apperror.CodeForbidden,
		"caller may only read their own balances",
		http.StatusForbidden,
	)
)
