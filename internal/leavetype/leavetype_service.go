package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "github.com/sourabhverman/people-hub-pro/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const allTypesCacheKey = "leave_types:all"

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		DefaultDays:  req.DefaultDays,
		IsPaid:       req.IsPaid == nil || *req.IsPaid,
		WorkdaysOnly: req.WorkdaysOnly,
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return LeaveTypeResponse{}, leavetypeerrors.ErrDuplicateLeaveType
		}
		s.logger.Error("create leave type failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("leave type created", zap.String("id", lt.ID.String()), zap.String("name", lt.Name))
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, allTypesCacheKey).Result()
		if err == nil {
			var resp []LeaveTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Master data is read far more often than it changes; singleflight keeps
	// a cache-miss stampede down to one query.
	v, err, _ := s.sf.Do(allTypesCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, allTypesCacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, allTypesCacheKey).Err(); err != nil {
		s.logger.Warn("leave type cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:           lt.ID.String(),
		Name:         lt.Name,
		Description:  lt.Description,
		DefaultDays:  lt.DefaultDays,
		IsPaid:       lt.IsPaid,
		WorkdaysOnly: lt.WorkdaysOnly,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
