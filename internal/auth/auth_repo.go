package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindRoleByUserID(ctx context.Context, userID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindRoleByUserID(ctx context.Context, userID string) (string, error) {
	var ur UserRole
	err := r.db.WithContext(ctx).
		First(&ur, "user_id = ?", userID).Error
	if err != nil {
		return "", err
	}
	return ur.Role, nil
}
