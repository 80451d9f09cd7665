package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "github.com/sourabhverman/people-hub-pro/internal/employee/errors"
	"github.com/sourabhverman/people-hub-pro/internal/events"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const orgChartCacheKey = "orgchart:v1"

// maxChainDepth caps the manager-chain walk; any real hierarchy is far
// shallower.
const maxChainDepth = 512

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetAll(ctx context.Context, status string) ([]EmployeeResponse, error)
	AssignManager(ctx context.Context, employeeID string, req AssignManagerRequest) (EmployeeResponse, error)
	OrgChart(ctx context.Context) ([]OrgChartNode, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outbox,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	joining, err := time.Parse("2006-01-02", req.DateOfJoining)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}

	var managerID *uuid.UUID
	if req.ReportingManagerID != nil {
		manager, err := s.lookupManager(ctx, *req.ReportingManagerID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		managerID = &manager.ID
	}

	seq, err := s.counter.GetNextValue(ctx, "employee_code")
	if err != nil {
		s.logger.Error("employee code sequence failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:                 uuid.New(),
		EmployeeCode:       fmt.Sprintf("EMP%04d", seq),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		DepartmentID:       uuid.MustParse(req.DepartmentID),
		DesignationID:      uuid.MustParse(req.DesignationID),
		ReportingManagerID: managerID,
		Status:             StatusActive,
		DateOfJoining:      joining,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
			case "23503":
				return EmployeeResponse{}, employeeerrors.ErrInvalidReference
			}
		}
		s.logger.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.enqueueCreatedEvent(ctx, tx, e); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOrgChart(ctx)
	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_code", e.EmployeeCode),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.loadEmployee(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

// AssignManager points an employee at a new reporting manager after checking
// the assignment keeps the hierarchy a tree.
func (s *service) AssignManager(ctx context.Context, employeeID string, req AssignManagerRequest) (EmployeeResponse, error) {
	e, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if employeeID == req.ReportingManagerID {
		return EmployeeResponse{}, employeeerrors.ErrSelfManager
	}

	manager, err := s.lookupManager(ctx, req.ReportingManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.checkNoCycle(ctx, employeeID, manager); err != nil {
		return EmployeeResponse{}, err
	}

	e.ReportingManagerID = &manager.ID
	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("assign manager failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOrgChart(ctx)
	s.logger.Info("manager assigned",
		zap.String("employee_id", employeeID),
		zap.String("manager_id", manager.ID.String()),
	)

	return mapToResponse(*e), nil
}

func (s *service) OrgChart(ctx context.Context) ([]OrgChartNode, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, orgChartCacheKey).Result()
		if err == nil {
			var nodes []OrgChartNode
			if err := json.Unmarshal([]byte(cached), &nodes); err == nil {
				return nodes, nil
			}
		}
	}

	v, err, _ := s.sf.Do(orgChartCacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindAll(ctx, "")
		if err != nil {
			return nil, err
		}

		nodes := BuildOrgChart(employees)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(nodes); err == nil {
				s.rdb.Set(ctx, orgChartCacheKey, jsonData, 10*time.Minute)
			}
		}

		return nodes, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]OrgChartNode), nil
}

// checkNoCycle walks up from the candidate manager; finding the employee on
// the way means the assignment would close a loop.
func (s *service) checkNoCycle(ctx context.Context, employeeID string, manager *Employee) error {
	current := manager
	for depth := 0; depth < maxChainDepth; depth++ {
		if current.ID.String() == employeeID {
			return employeeerrors.ErrManagerCycle
		}
		if current.ReportingManagerID == nil {
			return nil
		}

		next, err := s.repo.FindByID(ctx, current.ReportingManagerID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		current = next
	}
	return employeeerrors.ErrManagerCycle
}

func (s *service) lookupManager(ctx context.Context, id string) (*Employee, error) {
	manager, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrManagerNotFound
		}
		return nil, err
	}
	if manager.Status == StatusExited {
		return nil, employeeerrors.ErrManagerExited
	}
	return manager, nil
}

func (s *service) loadEmployee(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *gorm.DB, e *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:    "employee.created",
		EmployeeID:   e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOrgChart(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, orgChartCacheKey).Err(); err != nil {
		s.logger.Warn("org chart cache invalidation failed", zap.Error(err))
	}
}
