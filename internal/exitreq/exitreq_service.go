package exitreq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/employee"
	employeeerrors "github.com/sourabhverman/people-hub-pro/internal/employee/errors"
	"github.com/sourabhverman/people-hub-pro/internal/events"
	exitreqerrors "github.com/sourabhverman/people-hub-pro/internal/exitreq/errors"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
	"github.com/sourabhverman/people-hub-pro/internal/shared/keylock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lockWait = 5 * time.Second

func lockKey(employeeID string) string {
	return "exit:" + employeeID
}

//go:generate mockgen -source=exitreq_service.go -destination=mock/exitreq_service_mock.go -package=mock
type Service interface {
	Initiate(ctx context.Context, employeeID string, req InitiateExitRequest) (ExitResponse, error)
	ManagerApprove(ctx context.Context, exitID, actorID string) (ExitResponse, error)
	HRApprove(ctx context.Context, exitID, actorID string) (ExitResponse, error)
	UpdateChecklist(ctx context.Context, exitID string, req UpdateChecklistRequest) (ExitResponse, error)
	Complete(ctx context.Context, exitID, actorID string) (ExitResponse, error)
	Cancel(ctx context.Context, exitID, actorID string) (ExitResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]ExitResponse, error)
	GetByID(ctx context.Context, exitID string) (ExitResponse, error)
	GetAll(ctx context.Context, status string) ([]ExitResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	locks     *keylock.Locker
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	locks *keylock.Locker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("exitreq.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exitreq.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		locks:     locks,
		logger:    l,
	}
}

// Initiate opens an exit request and moves the employee onto notice period.
// Both writes share one transaction under the employee's exit lock so a
// double submission cannot create two open requests.
func (s *service) Initiate(ctx context.Context, employeeID string, req InitiateExitRequest) (ExitResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return ExitResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	lastDay, err := time.Parse("2006-01-02", req.LastWorkingDay)
	if err != nil {
		return ExitResponse{}, exitreqerrors.ErrInvalidLastWorkingDay
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if lastDay.Before(today) {
		return ExitResponse{}, exitreqerrors.ErrInvalidLastWorkingDay
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExitResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return ExitResponse{}, err
	}
	if emp.Status == employee.StatusExited {
		return ExitResponse{}, exitreqerrors.ErrIllegalTransition
	}

	release, err := s.acquire(ctx, employeeID)
	if err != nil {
		return ExitResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ExitResponse{}, tx.Error
	}
	defer tx.Rollback()

	active, err := s.repo.WithTx(tx).FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		return ExitResponse{}, err
	}
	if len(active) > 0 {
		return ExitResponse{}, exitreqerrors.ErrActiveExitExists
	}

	e := &ExitRequest{
		ID:             uuid.New(),
		EmployeeID:     empID,
		Reason:         req.Reason,
		LastWorkingDay: lastDay,
		Status:         StatusInitiated,
	}

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("create exit request failed", zap.Error(err))
		return ExitResponse{}, err
	}

	if err := s.employees.WithTx(tx).UpdateStatus(ctx, employeeID, employee.StatusNoticePeriod); err != nil {
		return ExitResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ExitResponse{}, err
	}

	s.logger.Info("exit initiated",
		zap.String("exit_id", e.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("last_working_day", req.LastWorkingDay),
	)

	return mapToResponse(*e), nil
}

func (s *service) ManagerApprove(ctx context.Context, exitID, actorID string) (ExitResponse, error) {
	return s.approve(ctx, exitID, actorID, StatusManagerApproved)
}

func (s *service) HRApprove(ctx context.Context, exitID, actorID string) (ExitResponse, error) {
	return s.approve(ctx, exitID, actorID, StatusHRApproved)
}

func (s *service) approve(ctx context.Context, exitID, actorID, target string) (ExitResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return ExitResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.loadExit(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}
	if e.EmployeeID == actor {
		return ExitResponse{}, exitreqerrors.ErrSelfApproval
	}

	release, err := s.acquire(ctx, e.EmployeeID.String())
	if err != nil {
		return ExitResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ExitResponse{}, tx.Error
	}
	defer tx.Rollback()

	e, err = s.repo.WithTx(tx).FindByID(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	if !canTransition(e.Status, target) {
		return ExitResponse{}, exitreqerrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	e.Status = target
	if target == StatusManagerApproved {
		e.ManagerApprovedBy = &actor
		e.ManagerApprovedAt = &now
	} else {
		e.HRApprovedBy = &actor
		e.HRApprovedAt = &now
	}

	if err := s.repo.WithTx(tx).Update(ctx, e); err != nil {
		return ExitResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ExitResponse{}, err
	}

	s.logger.Info("exit stage approved",
		zap.String("exit_id", exitID),
		zap.String("stage", target),
		zap.String("approved_by", actorID),
	)

	return mapToResponse(*e), nil
}

func (s *service) UpdateChecklist(ctx context.Context, exitID string, req UpdateChecklistRequest) (ExitResponse, error) {
	e, err := s.loadExit(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	release, err := s.acquire(ctx, e.EmployeeID.String())
	if err != nil {
		return ExitResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ExitResponse{}, tx.Error
	}
	defer tx.Rollback()

	e, err = s.repo.WithTx(tx).FindByID(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	if e.Status == StatusCompleted || e.Status == StatusCancelled {
		return ExitResponse{}, exitreqerrors.ErrIllegalTransition
	}

	if req.AssetReturned != nil {
		e.AssetReturned = *req.AssetReturned
	}
	if req.KnowledgeTransferred != nil {
		e.KnowledgeTransferred = *req.KnowledgeTransferred
	}
	if req.FinalSettlementDone != nil {
		e.FinalSettlementDone = *req.FinalSettlementDone
	}

	if err := s.repo.WithTx(tx).Update(ctx, e); err != nil {
		return ExitResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ExitResponse{}, err
	}

	return mapToResponse(*e), nil
}

// Complete closes an HR approved exit once the clearance checklist is done
// and marks the employee as exited, emitting the lifecycle event in the same
// transaction.
func (s *service) Complete(ctx context.Context, exitID, actorID string) (ExitResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return ExitResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.loadExit(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	release, err := s.acquire(ctx, e.EmployeeID.String())
	if err != nil {
		return ExitResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ExitResponse{}, tx.Error
	}
	defer tx.Rollback()

	e, err = s.repo.WithTx(tx).FindByID(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	if !canTransition(e.Status, StatusCompleted) {
		return ExitResponse{}, exitreqerrors.ErrIllegalTransition
	}
	if !e.ChecklistComplete() {
		return ExitResponse{}, exitreqerrors.ErrChecklistIncomplete
	}

	now := time.Now().UTC()
	e.Status = StatusCompleted
	e.CompletedAt = &now

	if err := s.repo.WithTx(tx).Update(ctx, e); err != nil {
		return ExitResponse{}, err
	}

	if err := s.employees.WithTx(tx).UpdateStatus(ctx, e.EmployeeID.String(), employee.StatusExited); err != nil {
		return ExitResponse{}, err
	}

	if err := s.enqueueCompletedEvent(ctx, tx, e, now); err != nil {
		return ExitResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ExitResponse{}, err
	}

	s.logger.Info("exit completed",
		zap.String("exit_id", exitID),
		zap.String("employee_id", e.EmployeeID.String()),
	)

	return mapToResponse(*e), nil
}

// Cancel aborts an exit before completion and restores the employee to
// active. Route policy limits callers to the owner and HR.
func (s *service) Cancel(ctx context.Context, exitID, actorID string) (ExitResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return ExitResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.loadExit(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	release, err := s.acquire(ctx, e.EmployeeID.String())
	if err != nil {
		return ExitResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ExitResponse{}, tx.Error
	}
	defer tx.Rollback()

	e, err = s.repo.WithTx(tx).FindByID(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}

	if !canTransition(e.Status, StatusCancelled) {
		return ExitResponse{}, exitreqerrors.ErrIllegalTransition
	}

	e.Status = StatusCancelled
	if err := s.repo.WithTx(tx).Update(ctx, e); err != nil {
		return ExitResponse{}, err
	}

	if err := s.employees.WithTx(tx).UpdateStatus(ctx, e.EmployeeID.String(), employee.StatusActive); err != nil {
		return ExitResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ExitResponse{}, err
	}

	s.logger.Info("exit cancelled",
		zap.String("exit_id", exitID),
		zap.String("employee_id", e.EmployeeID.String()),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]ExitResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	requests, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) GetByID(ctx context.Context, exitID string) (ExitResponse, error) {
	e, err := s.loadExit(ctx, exitID)
	if err != nil {
		return ExitResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ExitResponse, error) {
	requests, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAll(requests), nil
}

func (s *service) acquire(ctx context.Context, employeeID string) (func(), error) {
	release, err := s.locks.Acquire(ctx, lockKey(employeeID), lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrTimeout) {
			return nil, apperror.ErrLockTimeout
		}
		return nil, err
	}
	return release, nil
}

func (s *service) loadExit(ctx context.Context, exitID string) (*ExitRequest, error) {
	if _, err := uuid.Parse(exitID); err != nil {
		return nil, exitreqerrors.ErrInvalidExitID
	}

	e, err := s.repo.FindByID(ctx, exitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exitreqerrors.ErrExitNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *service) enqueueCompletedEvent(ctx context.Context, tx *gorm.DB, e *ExitRequest, at time.Time) error {
	event := events.ExitCompletedEvent{
		EventType:      "exit.completed",
		ExitRequestID:  e.ID.String(),
		EmployeeID:     e.EmployeeID.String(),
		LastWorkingDay: e.LastWorkingDay.Format("2006-01-02"),
		OccurredAt:     at,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "exit_request",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ExitCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapAll(requests []ExitRequest) []ExitResponse {
	resp := make([]ExitResponse, len(requests))
	for i, e := range requests {
		resp[i] = mapToResponse(e)
	}
	return resp
}
