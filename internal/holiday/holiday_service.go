package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	holidayerrors "github.com/sourabhverman/people-hub-pro/internal/holiday/errors"
	"github.com/sourabhverman/people-hub-pro/internal/shared/calendar"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

func yearCacheKey(year int) string {
	return fmt.Sprintf("holidays:%d", year)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// CalendarForYear builds the working-day calendar the leave workflow
	// consults. Optional holidays are excluded; they remain working days.
	CalendarForYear(ctx context.Context, year int) (*calendar.Calendar, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayDate
	}

	h := &Holiday{
		ID:         uuid.New(),
		Name:       req.Name,
		Date:       date,
		IsOptional: req.IsOptional,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return HolidayResponse{}, holidayerrors.ErrDuplicateHoliday
		}
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidateCache(ctx, date.Year())
	s.logger.Info("holiday created", zap.String("name", h.Name), zap.String("date", req.Date))
	return mapToResponse(*h), nil
}

func (s *service) GetByYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	holidays, err := s.loadYear(ctx, year)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, h.Date.Year())
	s.logger.Info("holiday deleted", zap.String("id", id), zap.String("name", h.Name))
	return nil
}

func (s *service) CalendarForYear(ctx context.Context, year int) (*calendar.Calendar, error) {
	holidays, err := s.loadYear(ctx, year)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		if h.IsOptional {
			continue
		}
		dates = append(dates, h.Date)
	}

	return calendar.New([]time.Weekday{time.Saturday, time.Sunday}, dates), nil
}

func (s *service) loadYear(ctx context.Context, year int) ([]Holiday, error) {
	key := yearCacheKey(year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var holidays []Holiday
			if err := json.Unmarshal([]byte(cached), &holidays); err == nil {
				return holidays, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		holidays, err := s.repo.FindByYear(ctx, year)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(holidays); err == nil {
				s.rdb.Set(ctx, key, jsonData, 30*time.Minute)
			}
		}

		return holidays, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Holiday), nil
}

func (s *service) invalidateCache(ctx context.Context, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, yearCacheKey(year)).Err(); err != nil {
		s.logger.Warn("holiday cache invalidation failed", zap.Int("year", year), zap.Error(err))
	}
}
