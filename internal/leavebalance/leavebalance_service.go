package leavebalance

import (
	"context"
	"errors"

	leavebalanceerrors "github.com/sourabhverman/people-hub-pro/internal/leavebalance/errors"
	"github.com/sourabhverman/people-hub-pro/internal/leavetype"
	leavetypeerrors "github.com/sourabhverman/people-hub-pro/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	Seed(ctx context.Context, req SeedBalanceRequest) (BalanceResponse, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error)
	GetAllForEmployee(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

type service struct {
	repo     Repository
	typeRepo leavetype.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, typeRepo leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, typeRepo: typeRepo, logger: l}
}

// Seed creates the entitlement row for an employee/leave-type/year, typically
// at the start of tenure or calendar year. Entitlement defaults to the leave
// type's annual allowance; no pro-ration is applied for mid-year joiners.
func (s *service) Seed(ctx context.Context, req SeedBalanceRequest) (BalanceResponse, error) {
	lt, err := s.typeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		s.logger.Error("seed balance type lookup failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	totalDays := lt.DefaultDays
	if req.TotalDays != nil {
		totalDays = *req.TotalDays
	}

	b := &LeaveBalance{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		LeaveTypeID: uuid.MustParse(req.LeaveTypeID),
		Year:        req.Year,
		TotalDays:   totalDays,
		UsedDays:    0,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceAlreadySeeded
		}
		s.logger.Error("seed balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("balance seeded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidLeaveTypeID
	}

	b, err := s.repo.FindForKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetAllForEmployee(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:  b.EmployeeID.String(),
		LeaveTypeID: b.LeaveTypeID.String(),
		Year:        b.Year,
		TotalDays:   b.TotalDays,
		UsedDays:    b.UsedDays,
		Remaining:   b.Remaining(),
	}
}
