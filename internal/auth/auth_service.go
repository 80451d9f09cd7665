package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/sourabhverman/people-hub-pro/internal/auth/errors"
	"github.com/sourabhverman/people-hub-pro/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if !user.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", req.Email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	role, err := s.repo.FindRoleByUserID(ctx, user.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login role lookup failed", zap.Error(err))
			return LoginResponse{}, err
		}
		role = domain.RoleEmployee
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.EmployeeID.String(),
		"role":        role,
		"iat":         now.Unix(),
		"exp":         now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("login token signing failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role),
	)

	return LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
		EmployeeID:  user.EmployeeID.String(),
		Role:        role,
	}, nil
}
