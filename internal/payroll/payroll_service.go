package payroll

import (
	"context"
	"errors"
	"time"

	payrollerrors "github.com/sourabhverman/people-hub-pro/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error)
	Lock(ctx context.Context, id string) (PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, year int) ([]PayslipResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error) {
	net := computeNetPay(req.BasicPay, req.Allowances, req.Deductions)
	if net < 0 {
		return PayslipResponse{}, payrollerrors.ErrNegativeNetPay
	}

	p := &Payslip{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		Month:       req.Month,
		Year:        req.Year,
		BasicPay:    req.BasicPay,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		NetPay:      net,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return PayslipResponse{}, payrollerrors.ErrDuplicatePayslip
		}
		s.logger.Error("generate payslip failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error) {
	p, err := s.loadPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	if p.IsLocked {
		return PayslipResponse{}, payrollerrors.ErrPayrollLocked
	}

	if req.BasicPay != nil {
		p.BasicPay = *req.BasicPay
	}
	if req.Allowances != nil {
		p.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		p.Deductions = *req.Deductions
	}

	net := computeNetPay(p.BasicPay, p.Allowances, p.Deductions)
	if net < 0 {
		return PayslipResponse{}, payrollerrors.ErrNegativeNetPay
	}
	p.NetPay = net

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update payslip failed", zap.String("id", id), zap.Error(err))
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

// Lock finalises the payslip. Locking is one way; unlocking would invalidate
// amounts the employee has already been shown.
func (s *service) Lock(ctx context.Context, id string) (PayslipResponse, error) {
	p, err := s.loadPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	if p.IsLocked {
		return PayslipResponse{}, payrollerrors.ErrPayrollLocked
	}

	p.IsLocked = true
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("lock payslip failed", zap.String("id", id), zap.Error(err))
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip locked", zap.String("id", id))
	return mapToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	p, err := s.loadPayslip(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, year int) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidPayslipID
	}

	payslips, err := s.repo.FindByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(payslips))
	for i, p := range payslips {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) loadPayslip(ctx context.Context, id string) (*Payslip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayslipID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return p, nil
}
