package designation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	designationerrors "github.com/sourabhverman/people-hub-pro/internal/designation/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const allDesignationsCacheKey = "designations:all"

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	d := &Designation{
		ID:    uuid.New(),
		Title: req.Title,
		Level: req.Level,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return DesignationResponse{}, designationerrors.ErrDuplicateDesignation
		}
		s.logger.Error("create designation failed", zap.Error(err))
		return DesignationResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("designation created", zap.String("id", d.ID.String()), zap.String("title", d.Title))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DesignationResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, allDesignationsCacheKey).Result()
		if err == nil {
			var resp []DesignationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(allDesignationsCacheKey, func() (interface{}, error) {
		designations, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]DesignationResponse, len(designations))
		for i, d := range designations {
			resp[i] = mapToResponse(d)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, allDesignationsCacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DesignationResponse), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, allDesignationsCacheKey).Err(); err != nil {
		s.logger.Warn("designation cache invalidation failed", zap.Error(err))
	}
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DesignationResponse{}, designationerrors.ErrInvalidDesignationID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, designationerrors.ErrDesignationNotFound
		}
		return DesignationResponse{}, err
	}
	return mapToResponse(*d), nil
}
