package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leavehub/internal/auditlog"
	"leavehub/internal/identity"
	leaverequesterrors "leavehub/internal/leaverequest/errors"
	"leavehub/internal/leavebalance"
	"leavehub/internal/notification"
	"leavehub/internal/scope"
	"leavehub/internal/sideeffect"
)

const resourceType = "leave_request"

//go:generate mockgen -source=leave_request_service.go -destination=mock/leave_request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller scope.Caller, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error)
	GetByUser(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	GetAll(ctx context.Context, caller scope.Caller, f Filters) ([]LeaveRequestResponse, error)
	GetPending(ctx context.Context, approverID *string) ([]LeaveRequestResponse, error)
	GetTeam(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
	GetActive(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	MonthlyApprovedForManager(ctx context.Context, managerID string, start, end time.Time) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, caller scope.Caller, id string, comments *string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, caller scope.Caller, id, rejectionReason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error)
	SoftDelete(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error)
	Restore(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error)
	BulkUpdate(ctx context.Context, caller scope.Caller, req BulkUpdateRequest) (BulkUpdateResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    identity.Repository
	ledger   leavebalance.Service
	audit    auditlog.Recorder
	notifier notification.Dispatcher
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users identity.Repository,
	ledger leavebalance.Service,
	audit auditlog.Recorder,
	notifier notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		ledger:   ledger,
		audit:    audit,
		notifier: notifier,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, caller scope.Caller, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("actor_id", caller.ID),
		zap.String("user_id", req.UserID),
		zap.String("leave_type", req.LeaveType),
	)

	userID, startDate, endDate, err := validateCreateRequest(caller, req)
	if err != nil {
		s.logger.Warn("create leave request validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	status := StatusPending
	if req.SaveAsDraft {
		status = StatusDraft
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		UserID:      userID,
		LeaveType:   req.LeaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		IsHalfDay:   req.IsHalfDay,
		HalfDayType: req.HalfDayType,
		TotalDays:   ComputeTotalDays(startDate, endDate, req.IsHalfDay),
		Reason:      req.Reason,
		Status:      status,
	}
	if req.ApproverID != nil {
		approverID, err := uuid.Parse(*req.ApproverID)
		if err != nil {
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidApproverID
		}
		lr.ApproverID = &approverID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("status", status),
	)

	s.recordAudit(ctx, caller.ID, auditlog.ActionCreateLeaveRequest, lr.ID.String(), map[string]any{
		"leave_type": lr.LeaveType,
		"start_date": lr.StartDate.Format("2006-01-02"),
		"end_date":   lr.EndDate.Format("2006-01-02"),
		"total_days": lr.TotalDays,
		"status":     lr.Status,
	})

	// A designated approver gets a heads-up only for submitted requests.
	if status == StatusPending && lr.ApproverID != nil {
		s.notify(ctx, lr.ApproverID.String(), notification.TypeWarning,
			"Leave request awaiting approval",
			fmt.Sprintf("A %s request for %s to %s is waiting for your review.",
				lr.LeaveType,
				lr.StartDate.Format("2006-01-02"),
				lr.EndDate.Format("2006-01-02"),
			),
			lr.ID.String(),
		)
	}

	return mapToResponse(*lr), nil
}

func (s *service) GetByID(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.authorizeRead(ctx, caller, lr); err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetAll(ctx context.Context, caller scope.Caller, f Filters) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindAll(ctx, f, scope.ForCaller(caller))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPending(ctx context.Context, approverID *string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindPending(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetTeam(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindAll(ctx, Filters{}, scope.Team(managerID))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetActive(ctx context.Context, userID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) MonthlyApprovedForManager(ctx context.Context, managerID string, start, end time.Time) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.FindApprovedInRange(ctx, scope.Team(managerID), start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, caller scope.Caller, id string, comments *string) (LeaveRequestResponse, error) {
	s.logger.Debug("approve leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", caller.ID),
	)

	approverID, err := uuid.Parse(caller.ID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(lr.Status, StatusApproved) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
	}
	if err := s.authorizeApproval(ctx, caller, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	lr.Status = StatusApproved
	lr.ApproverID = &approverID
	lr.ApprovedAt = &now
	lr.RejectedAt = nil
	lr.RejectionReason = nil
	lr.ApprovalComments = comments

	// The approval is committed before any secondary effect runs; the
	// conditional update makes a concurrent second approval lose cleanly
	// instead of double-charging the balance.
	if err := s.transition(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request approved",
		zap.String("leave_request_id", id),
		zap.String("approver_id", caller.ID),
		zap.Float64("total_days", lr.TotalDays),
	)

	sideeffect.Run(ctx, s.logger, "ledger-apply-approval", func(ctx context.Context) error {
		return s.ledger.ApplyApproval(ctx, lr.UserID.String(), lr.LeaveType, now.Year(), lr.TotalDays)
	})

	details := map[string]any{
		"leave_type": lr.LeaveType,
		"total_days": lr.TotalDays,
	}
	if comments != nil {
		details["comments"] = *comments
	}
	s.recordAudit(ctx, caller.ID, auditlog.ActionApproveLeaveRequest, id, details)

	s.notify(ctx, lr.UserID.String(), notification.TypeSuccess,
		"Leave request approved",
		fmt.Sprintf("Your %s request for %s to %s was approved.",
			lr.LeaveType,
			lr.StartDate.Format("2006-01-02"),
			lr.EndDate.Format("2006-01-02"),
		),
		id,
	)

	return mapToResponse(*lr), nil
}

func (s *service) Reject(ctx context.Context, caller scope.Caller, id, rejectionReason string) (LeaveRequestResponse, error) {
	s.logger.Debug("reject leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", caller.ID),
	)

	if rejectionReason == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRejectionReasonRequired
	}
	approverID, err := uuid.Parse(caller.ID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(lr.Status, StatusRejected) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
	}
	if err := s.authorizeApproval(ctx, caller, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	lr.Status = StatusRejected
	lr.ApproverID = &approverID
	lr.ApprovedAt = nil
	lr.RejectedAt = &now
	lr.RejectionReason = &rejectionReason
	lr.ApprovalComments = nil

	if err := s.transition(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request rejected",
		zap.String("leave_request_id", id),
		zap.String("approver_id", caller.ID),
	)

	s.recordAudit(ctx, caller.ID, auditlog.ActionRejectLeaveRequest, id, map[string]any{
		"rejection_reason": rejectionReason,
	})

	s.notify(ctx, lr.UserID.String(), notification.TypeError,
		"Leave request rejected",
		fmt.Sprintf("Your %s request for %s to %s was rejected: %s",
			lr.LeaveType,
			lr.StartDate.Format("2006-01-02"),
			lr.EndDate.Format("2006-01-02"),
			rejectionReason,
		),
		id,
	)

	return mapToResponse(*lr), nil
}

func (s *service) Cancel(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error) {
	s.logger.Debug("cancel leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", caller.ID),
	)

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if lr.UserID.String() != caller.ID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if !isAllowedStatusTransition(lr.Status, StatusCanceled) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
	}

	lr.Status = StatusCanceled
	lr.ApprovedAt = nil
	lr.RejectedAt = nil
	lr.RejectionReason = nil
	lr.ApprovalComments = nil

	if err := s.transition(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request cancelled", zap.String("leave_request_id", id))
	s.recordAudit(ctx, caller.ID, auditlog.ActionCancelLeaveRequest, id, nil)

	return mapToResponse(*lr), nil
}

func (s *service) SoftDelete(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if err := s.authorizeDelete(ctx, caller, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		s.logger.Error("soft delete failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave request soft-deleted", zap.String("leave_request_id", id))
	s.recordAudit(ctx, caller.ID, auditlog.ActionDeleteLeaveRequest, id, map[string]any{
		"status": lr.Status,
	})

	deleted, err := s.repo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*deleted), nil
}

func (s *service) Restore(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if err := s.authorizeDelete(ctx, caller, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		if errors.Is(err, ErrNoRowsUpdated) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrNotDeleted
		}
		s.logger.Error("restore failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave request restored", zap.String("leave_request_id", id))
	s.recordAudit(ctx, caller.ID, auditlog.ActionRestoreLeaveRequest, id, map[string]any{
		"status": lr.Status,
	})

	restored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*restored), nil
}

// BulkUpdate applies the patch to every id independently: one item's failure
// is reported and skipped, never rolled into the others.
func (s *service) BulkUpdate(ctx context.Context, caller scope.Caller, req BulkUpdateRequest) (BulkUpdateResponse, error) {
	s.logger.Debug("bulk update leave requests",
		zap.String("actor_id", caller.ID),
		zap.Int("count", len(req.IDs)),
	)

	resp := BulkUpdateResponse{}
	for _, id := range req.IDs {
		updated, err := s.applyPatch(ctx, caller, id, req.Patch)
		if err != nil {
			s.logger.Warn("bulk update item failed",
				zap.String("leave_request_id", id),
				zap.Error(err),
			)
			resp.Failed = append(resp.Failed, BulkItemFailure{ID: id, Error: err.Error()})
			continue
		}
		resp.Updated = append(resp.Updated, updated)
	}

	s.recordAudit(ctx, caller.ID, auditlog.ActionBulkUpdateLeave, "", map[string]any{
		"requested": len(req.IDs),
		"updated":   len(resp.Updated),
		"failed":    len(resp.Failed),
	})

	return resp, nil
}

func (s *service) applyPatch(ctx context.Context, caller scope.Caller, id string, patch UpdatePatch) (LeaveRequestResponse, error) {
	// Status changes reuse the single-item transitions so every guard and
	// secondary effect applies unchanged.
	if patch.Status != nil {
		switch *patch.Status {
		case StatusApproved:
			return s.Approve(ctx, caller, id, nil)
		case StatusRejected:
			reason := ""
			if patch.RejectionReason != nil {
				reason = *patch.RejectionReason
			}
			return s.Reject(ctx, caller, id, reason)
		case StatusCanceled:
			return s.Cancel(ctx, caller, id)
		case StatusPending:
			return s.submitDraft(ctx, caller, id)
		default:
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
		}
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if lr.UserID.String() != caller.ID && !scope.CanActOn(caller, ownerManagerID(lr)) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNoApprovalAuthority
	}
	if lr.Status != StatusDraft && lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
	}

	changed := []string{}
	if patch.LeaveType != nil {
		if !isValidLeaveType(*patch.LeaveType) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveType
		}
		lr.LeaveType = *patch.LeaveType
		changed = append(changed, "leave_type")
	}
	if patch.StartDate != nil {
		startDate, err := parseDate(*patch.StartDate)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		lr.StartDate = startDate
		changed = append(changed, "start_date")
	}
	if patch.EndDate != nil {
		endDate, err := parseDate(*patch.EndDate)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		lr.EndDate = endDate
		changed = append(changed, "end_date")
	}
	if patch.IsHalfDay != nil {
		lr.IsHalfDay = *patch.IsHalfDay
		changed = append(changed, "is_half_day")
	}
	if patch.HalfDayType != nil {
		lr.HalfDayType = patch.HalfDayType
		changed = append(changed, "half_day_type")
	}
	if patch.Reason != nil {
		lr.Reason = *patch.Reason
		changed = append(changed, "reason")
	}

	if lr.StartDate.After(lr.EndDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}
	if lr.IsHalfDay && lr.HalfDayType == nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrHalfDayTypeRequired
	}
	lr.TotalDays = ComputeTotalDays(lr.StartDate, lr.EndDate, lr.IsHalfDay)

	if err := s.repo.Update(ctx, lr); err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.recordAudit(ctx, caller.ID, auditlog.ActionUpdateLeaveRequest, id, map[string]any{
		"fields": changed,
	})
	return mapToResponse(*lr), nil
}

func (s *service) submitDraft(ctx context.Context, caller scope.Caller, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if lr.UserID.String() != caller.ID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if !isAllowedStatusTransition(lr.Status, StatusPending) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidStatusTransition
	}

	lr.Status = StatusPending
	if err := s.transition(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.recordAudit(ctx, caller.ID, auditlog.ActionUpdateLeaveRequest, id, map[string]any{
		"fields": []string{"status"},
		"status": StatusPending,
	})
	return mapToResponse(*lr), nil
}

// transition persists a status change through the conditional update and
// maps a lost race to the conflict sentinel.
func (s *service) transition(ctx context.Context, lr *LeaveRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.TransitionStatus(ctx, lr, []string{StatusDraft, StatusPending}); err != nil {
		if errors.Is(err, ErrNoRowsUpdated) {
			return leaverequesterrors.ErrAlreadyFinalized
		}
		s.logger.Error("transition persist failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.String("target_status", lr.Status),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition commit failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) authorizeRead(ctx context.Context, caller scope.Caller, lr *LeaveRequest) error {
	if lr.UserID.String() == caller.ID {
		return nil
	}
	switch caller.Role {
	case identity.RoleAdmin, identity.RoleHR:
		return nil
	case identity.RoleSupervisor:
		manages, err := s.users.IsManagerOf(ctx, caller.ID, lr.UserID.String())
		if err != nil {
			return err
		}
		if manages {
			return nil
		}
	}
	return leaverequesterrors.ErrLeaveRequestNotFound
}

func (s *service) authorizeApproval(ctx context.Context, caller scope.Caller, lr *LeaveRequest) error {
	switch caller.Role {
	case identity.RoleAdmin, identity.RoleHR:
		return nil
	case identity.RoleSupervisor:
		manages, err := s.users.IsManagerOf(ctx, caller.ID, lr.UserID.String())
		if err != nil {
			return err
		}
		if manages {
			return nil
		}
	}
	return leaverequesterrors.ErrNoApprovalAuthority
}

func (s *service) authorizeDelete(ctx context.Context, caller scope.Caller, lr *LeaveRequest) error {
	if err := s.authorizeApproval(ctx, caller, lr); err != nil {
		return leaverequesterrors.ErrNoDeleteAuthority
	}
	return nil
}

func (s *service) recordAudit(ctx context.Context, actorID, action, resourceID string, details map[string]any) {
	sideeffect.Run(ctx, s.logger, "audit-"+action, func(ctx context.Context) error {
		_, err := s.audit.Record(ctx, auditlog.Entry{
			ActorID:      actorID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Details:      details,
		})
		return err
	})
}

func (s *service) notify(ctx context.Context, userID, notifType, title, message, relatedID string) {
	sideeffect.Run(ctx, s.logger, "notify-"+notifType, func(ctx context.Context) error {
		_, err := s.notifier.Dispatch(ctx, notification.Dispatch{
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      notifType,
			RelatedID: &relatedID,
		})
		return err
	})
}

func ownerManagerID(lr *LeaveRequest) *string {
	if lr.Owner == nil || lr.Owner.ManagerID == nil {
		return nil
	}
	v := lr.Owner.ManagerID.String()
	return &v
}

func validateCreateRequest(caller scope.Caller, req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(caller.ID); err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidActorID
	}
	// Employees submit for themselves; only admin and HR file on behalf of
	// someone else.
	if req.UserID != caller.ID && caller.Role != identity.RoleAdmin && caller.Role != identity.RoleHR {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrNotRequestOwner
	}
	if !isValidLeaveType(req.LeaveType) {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if startDate.Before(today) {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrStartDateInPast
	}
	if req.IsHalfDay && req.HalfDayType == nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaverequesterrors.ErrHalfDayTypeRequired
	}

	return userID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          lr.ID.String(),
		UserID:      lr.UserID.String(),
		LeaveType:   lr.LeaveType,
		StartDate:   lr.StartDate.Format("2006-01-02"),
		EndDate:     lr.EndDate.Format("2006-01-02"),
		IsHalfDay:   lr.IsHalfDay,
		HalfDayType: lr.HalfDayType,
		TotalDays:   lr.TotalDays,
		Reason:      lr.Reason,
		Status:      lr.Status,
	}
	if lr.ApproverID != nil {
		v := lr.ApproverID.String()
		resp.ApproverID = &v
	}
	if lr.ApprovedAt != nil {
		v := lr.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if lr.RejectedAt != nil {
		v := lr.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	resp.RejectionReason = lr.RejectionReason
	resp.ApprovalComments = lr.ApprovalComments
	if lr.DeletedAt.Valid {
		v := lr.DeletedAt.Time.Format(time.RFC3339)
		resp.DeletedAt = &v
	}
	if lr.Owner != nil {
		owner := &OwnerInfo{
			ID:    lr.Owner.ID.String(),
			Name:  lr.Owner.Name,
			Email: lr.Owner.Email,
		}
		if lr.Owner.DepartmentID != nil {
			v := lr.Owner.DepartmentID.String()
			owner.Department = &v
		}
		resp.Owner = owner
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(rows))
	for i, lr := range rows {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
