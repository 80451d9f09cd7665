package exitreq

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=exitreq_repo.go -destination=mock/exitreq_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *ExitRequest) error
	FindByID(ctx context.Context, id string) (*ExitRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ExitRequest, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) ([]ExitRequest, error)
	FindAll(ctx context.Context, status string) ([]ExitRequest, error)
	Update(ctx context.Context, e *ExitRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, e *ExitRequest) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ExitRequest, error) {
	var e ExitRequest
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ExitRequest, error) {
	var requests []ExitRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) ([]ExitRequest, error) {
	var requests []ExitRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusInitiated, StatusManagerApproved, StatusHRApproved}).
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]ExitRequest, error) {
	db := r.db.WithContext(ctx).Model(&ExitRequest{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []ExitRequest
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) Update(ctx context.Context, e *ExitRequest) error {
	return r.db.WithContext(ctx).Save(e).Error
}
