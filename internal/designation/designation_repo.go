package designation

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=designation_repo.go -destination=mock/designation_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Designation) error
	FindAll(ctx context.Context) ([]Designation, error)
	FindByID(ctx context.Context, id string) (*Designation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Designation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Designation, error) {
	var designations []Designation
	err := r.db.WithContext(ctx).Order("level ASC, title ASC").Find(&designations).Error
	return designations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}
