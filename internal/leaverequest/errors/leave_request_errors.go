package leaverequesterrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidApproverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approver id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must not be in the past",
		http.StatusBadRequest,
	)
	ErrHalfDayTypeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"half_day_type is required for half-day requests",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave request status transition",
		http.StatusBadRequest,
	)
	ErrAlreadyFinalized = apperror.New(
		apperror.CodeConflict,
		"leave request was already finalized by another operation",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"caller is not the owner of this request",
		http.StatusForbidden,
	)
	ErrNoApprovalAuthority = apperror.New(
		apperror.CodeForbidden,
		"caller has no approval authority over this request",
		http.StatusForbidden,
	)
	ErrNoDeleteAuthority = apperror.New(
		apperror.CodeForbidden,
		"caller has no delete authority over this request",
		http.StatusForbidden,
	)
	ErrNotDeleted = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not deleted",
		http.StatusBadRequest,
	)
	ErrUnknownUser = apperror.New(
		apperror.CodeReferential,
		"user does not exist",
		http.StatusBadRequest,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"a conflicting leave request already exists",
		http.StatusConflict,
	)
)
