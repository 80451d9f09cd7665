package policy

import (
	"context"
	"errors"
	"time"

	policyerrors "github.com/sourabhverman/people-hub-pro/internal/policy/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]PolicyResponse, error)
	GetByID(ctx context.Context, id string) (PolicyResponse, error)
	Deactivate(ctx context.Context, id string) error
	Acknowledge(ctx context.Context, policyID, employeeID string) (AcknowledgementResponse, error)
	Acknowledgements(ctx context.Context, policyID string) ([]AcknowledgementResponse, error)
	MyAcknowledgements(ctx context.Context, employeeID string) ([]AcknowledgementResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrInvalidEffectiveDate
	}

	p := &Policy{
		ID:            uuid.New(),
		Title:         req.Title,
		Content:       req.Content,
		Version:       1,
		IsActive:      true,
		EffectiveDate: effective,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create policy failed", zap.Error(err))
		return PolicyResponse{}, err
	}

	s.logger.Info("policy created", zap.String("id", p.ID.String()), zap.String("title", p.Title))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]PolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.loadPolicy(ctx, id)
	if err != nil {
		return PolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := s.loadPolicy(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.Info("policy deactivated", zap.String("id", id))
	return nil
}

// Acknowledge records that the employee has read an active policy. The unique
// index on (policy, employee) makes repeats a conflict, not a second row.
func (s *service) Acknowledge(ctx context.Context, policyID, employeeID string) (AcknowledgementResponse, error) {
	p, err := s.loadPolicy(ctx, policyID)
	if err != nil {
		return AcknowledgementResponse{}, err
	}
	if !p.IsActive {
		return AcknowledgementResponse{}, policyerrors.ErrPolicyInactive
	}

	a := &PolicyAcknowledgement{
		ID:             uuid.New(),
		PolicyID:       p.ID,
		EmployeeID:     uuid.MustParse(employeeID),
		AcknowledgedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateAck(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AcknowledgementResponse{}, policyerrors.ErrAlreadyAcknowledged
		}
		s.logger.Error("acknowledge policy failed", zap.Error(err))
		return AcknowledgementResponse{}, err
	}

	s.logger.Info("policy acknowledged",
		zap.String("policy_id", policyID),
		zap.String("employee_id", employeeID),
	)

	return mapAckToResponse(*a), nil
}

func (s *service) Acknowledgements(ctx context.Context, policyID string) ([]AcknowledgementResponse, error) {
	if _, err := uuid.Parse(policyID); err != nil {
		return nil, policyerrors.ErrInvalidPolicyID
	}

	acks, err := s.repo.FindAcksByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	return mapAcks(acks), nil
}

func (s *service) MyAcknowledgements(ctx context.Context, employeeID string) ([]AcknowledgementResponse, error) {
	acks, err := s.repo.FindAcksByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAcks(acks), nil
}

func (s *service) loadPolicy(ctx context.Context, id string) (*Policy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, policyerrors.ErrInvalidPolicyID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policyerrors.ErrPolicyNotFound
		}
		return nil, err
	}
	return p, nil
}

func mapAcks(acks []PolicyAcknowledgement) []AcknowledgementResponse {
	resp := make([]AcknowledgementResponse, len(acks))
	for i, a := range acks {
		resp[i] = mapAckToResponse(a)
	}
	return resp
}
