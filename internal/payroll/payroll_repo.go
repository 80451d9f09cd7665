package payroll

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	FindByEmployee(ctx context.Context, employeeID string, year int) ([]Payslip, error)
	Update(ctx context.Context, p *Payslip) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, year int) ([]Payslip, error) {
	db := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if year != 0 {
		db = db.Where("year = ?", year)
	}

	var payslips []Payslip
	err := db.Order("year DESC, month DESC").Find(&payslips).Error
	return payslips, err
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Save(p).Error
}
