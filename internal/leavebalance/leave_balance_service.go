package leavebalance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leavehub/internal/auditlog"
	leavebalanceerrors "leavehub/internal/leavebalance/errors"
	"leavehub/internal/sideeffect"
)

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	GetByUserYear(ctx context.Context, userID string, year int) ([]BalanceResponse, error)
	Upsert(ctx context.Context, req UpsertBalanceRequest) (BalanceResponse, error)
	Update(ctx context.Context, id string, req UpdateBalanceRequest) (BalanceResponse, error)
	// ApplyApproval charges an approved request against the matching balance
	// row. A missing row means the leave type has no tracked balance policy
	// (UNPAID, for example) and is a no-op, not an error.
	ApplyApproval(ctx context.Context, userID, leaveType string, year int, days float64) error
	CarryOver(ctx context.Context, actorID, userID string, fromYear, toYear int) ([]BalanceResponse, error)
	Summary(ctx context.Context, userID string, year int) (BalanceSummary, error)
}

type service struct {
	repo   Repository
	audit  auditlog.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, audit auditlog.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, audit: audit, logger: l}
}

func (s *service) GetByUserYear(ctx context.Context, userID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindByUserYear(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Upsert(ctx context.Context, req UpsertBalanceRequest) (BalanceResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidUserID
	}

	b := &LeaveBalance{
		ID:             uuid.New(),
		UserID:         userID,
		LeaveType:      req.LeaveType,
		Year:           req.Year,
		TotalAllowance: req.TotalAllowance,
		CarriedOver:    req.CarriedOver,
	}
	b.recompute()

	if err := s.repo.Upsert(ctx, b); err != nil {
		s.logger.Error("upsert balance failed",
			zap.String("user_id", req.UserID),
			zap.String("leave_type", req.LeaveType),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return BalanceResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBalanceRequest) (BalanceResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}

	if req.TotalAllowance != nil {
		b.TotalAllowance = *req.TotalAllowance
	}
	if req.UsedDays != nil {
		if *req.UsedDays < 0 {
			return BalanceResponse{}, leavebalanceerrors.ErrNegativeUsage
		}
		b.UsedDays = *req.UsedDays
	}
	b.recompute()

	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("update balance failed", zap.String("balance_id", id), zap.Error(err))
		return BalanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) ApplyApproval(ctx context.Context, userID, leaveType string, year int, days float64) error {
	b, err := s.repo.FindByUserTypeYear(ctx, userID, leaveType, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("no tracked balance for leave type",
				zap.String("user_id", userID),
				zap.String("leave_type", leaveType),
				zap.Int("year", year),
			)
			return nil
		}
		return err
	}

	b.UsedDays += days
	b.recompute()

	if err := s.repo.Update(ctx, b); err != nil {
		return err
	}

	s.logger.Info("balance charged",
		zap.String("user_id", userID),
		zap.String("leave_type", leaveType),
		zap.Int("year", year),
		zap.Float64("days", days),
		zap.Float64("remaining", b.RemainingDays),
	)
	return nil
}

func (s *service) CarryOver(ctx context.Context, actorID, userID string, fromYear, toYear int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidUserID
	}
	if toYear <= fromYear {
		return nil, leavebalanceerrors.ErrInvalidYearRange
	}

	rows, err := s.repo.FindByUserYear(ctx, userID, fromYear)
	if err != nil {
		return nil, err
	}

	carried := make([]BalanceResponse, 0, len(rows))
	for _, old := range rows {
		// Exhausted balances produce no carry-over row.
		if old.RemainingDays <= 0 {
			continue
		}

		next := &LeaveBalance{
			ID:             uuid.New(),
			UserID:         old.UserID,
			LeaveType:      old.LeaveType,
			Year:           toYear,
			TotalAllowance: old.TotalAllowance + old.RemainingDays,
			CarriedOver:    old.RemainingDays,
		}
		next.recompute()

		if err := s.repo.Upsert(ctx, next); err != nil {
			s.logger.Error("carry over upsert failed",
				zap.String("user_id", userID),
				zap.String("leave_type", old.LeaveType),
				zap.Error(err),
			)
			return nil, mapRepositoryError(err)
		}
		carried = append(carried, mapToResponse(*next))
	}

	sideeffect.Run(ctx, s.logger, "audit-carry-over", func(ctx context.Context) error {
		_, err := s.audit.Record(ctx, auditlog.Entry{
			ActorID:      actorID,
			Action:       auditlog.ActionCarryOverBalances,
			ResourceType: "leave_balance",
			Details: map[string]any{
				"user_id":   userID,
				"from_year": fromYear,
				"to_year":   toYear,
				"rows":      len(carried),
			},
		})
		return err
	})

	return carried, nil
}

func (s *service) Summary(ctx context.Context, userID string, year int) (BalanceSummary, error) {
	rows, err := s.repo.FindByUserYear(ctx, userID, year)
	if err != nil {
		return BalanceSummary{}, err
	}

	summary := BalanceSummary{UserID: userID, Year: year}
	for _, b := range rows {
		summary.TotalRemaining += b.RemainingDays
		summary.TotalUsed += b.UsedDays
	}
	return summary, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrBalanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return leavebalanceerrors.ErrDuplicateBalance
		case "23503":
			return leavebalanceerrors.ErrUnknownUser
		}
	}

	return err
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		UserID:         b.UserID.String(),
		LeaveType:      b.LeaveType,
		Year:           b.Year,
		TotalAllowance: b.TotalAllowance,
		UsedDays:       b.UsedDays,
		RemainingDays:  b.RemainingDays,
		CarriedOver:    b.CarriedOver,
	}
}

func mapToListResponse(rows []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(rows))
	for i, b := range rows {
		resp[i] = mapToResponse(b)
	}
	return resp
}
