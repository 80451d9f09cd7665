package policy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	FindAll(ctx context.Context, activeOnly bool) ([]Policy, error)
	FindByID(ctx context.Context, id string) (*Policy, error)
	Deactivate(ctx context.Context, id string) error

	CreateAck(ctx context.Context, a *PolicyAcknowledgement) error
	FindAcksByPolicy(ctx context.Context, policyID string) ([]PolicyAcknowledgement, error)
	FindAcksByEmployee(ctx context.Context, employeeID string) ([]PolicyAcknowledgement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Policy, error) {
	db := r.db.WithContext(ctx).Model(&Policy{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var policies []Policy
	err := db.Order("effective_date DESC").Find(&policies).Error
	return policies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Policy, error) {
	var p Policy
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Policy{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) CreateAck(ctx context.Context, a *PolicyAcknowledgement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAcksByPolicy(ctx context.Context, policyID string) ([]PolicyAcknowledgement, error) {
	var acks []PolicyAcknowledgement
	err := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("acknowledged_at ASC").
		Find(&acks).Error
	return acks, err
}

func (r *repository) FindAcksByEmployee(ctx context.Context, employeeID string) ([]PolicyAcknowledgement, error) {
	var acks []PolicyAcknowledgement
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("acknowledged_at ASC").
		Find(&acks).Error
	return acks, err
}
