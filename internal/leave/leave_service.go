package leave

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/events"
	leaveerrors "github.com/sourabhverman/people-hub-pro/internal/leave/errors"
	"github.com/sourabhverman/people-hub-pro/internal/leavebalance"
	"github.com/sourabhverman/people-hub-pro/internal/leavetype"
	leavetypeerrors "github.com/sourabhverman/people-hub-pro/internal/leavetype/errors"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
	"github.com/sourabhverman/people-hub-pro/internal/shared/calendar"
	"github.com/sourabhverman/people-hub-pro/internal/shared/keylock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// lockWait bounds how long a request blocks on another in-flight mutation for
// the same employee before giving up with a retryable error.
const lockWait = 5 * time.Second

// CalendarProvider supplies the holiday calendar used for working-day leave
// types.
type CalendarProvider interface {
	CalendarForYear(ctx context.Context, year int) (*calendar.Calendar, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, leaveID, actorID string) (LeaveResponse, error)
	Reject(ctx context.Context, leaveID, actorID, reason string) (LeaveResponse, error)
	Withdraw(ctx context.Context, leaveID, actorID string) (LeaveResponse, error)
	Cancel(ctx context.Context, leaveID, actorID string) (LeaveResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, leaveID string) (LeaveResponse, error)
	GetAll(ctx context.Context, status string) ([]LeaveResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	balances  leavebalance.Repository
	types     leavetype.Repository
	outbox    kafka.OutboxRepository
	calendars CalendarProvider
	locks     *keylock.Locker
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	balances leavebalance.Repository,
	types leavetype.Repository,
	outbox kafka.OutboxRepository,
	calendars CalendarProvider,
	locks *keylock.Locker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		types:     types,
		outbox:    outbox,
		calendars: calendars,
		locks:     locks,
		logger:    l,
	}
}

// Submit validates and records a new request and reserves its days from the
// balance. Validation and reservation run under the employee's lock inside
// one transaction, so two racing submissions can never both pass the overlap
// or balance checks.
func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	lt, err := s.types.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}

	year := start.Year()

	var cal *calendar.Calendar
	if lt.WorkdaysOnly && s.calendars != nil {
		cal, err = s.calendarForRange(ctx, start, end)
		if err != nil {
			s.logger.Error("holiday calendar load failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	release, err := s.locks.Acquire(ctx, leavebalance.LockKey(employeeID), lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrTimeout) {
			return LeaveResponse{}, apperror.ErrLockTimeout
		}
		return LeaveResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	active, err := s.repo.WithTx(tx).FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}

	days, err := Validate(ValidationInput{
		StartDate:    start,
		EndDate:      end,
		WorkdaysOnly: lt.WorkdaysOnly,
		Calendar:     cal,
		Existing:     active,
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:          uuid.New(),
		EmployeeID:  empID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   days,
		Reason:      req.Reason,
		Status:      StatusPending,
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("leave create failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Unpaid leave types never touch the ledger.
	if lt.IsPaid {
		if err := leavebalance.Reserve(ctx, s.balances.WithTx(tx), employeeID, req.LeaveTypeID, year, days); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", days),
	)

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, leaveID, actorID string) (LeaveResponse, error) {
	return s.decide(ctx, leaveID, actorID, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, leaveID, actorID, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, leaveID, actorID, StatusRejected, reason)
}

// decide moves a pending request to approved or rejected and applies the
// matching ledger effect, recording the decision event in the outbox within
// the same transaction.
func (s *service) decide(ctx context.Context, leaveID, actorID, target, reason string) (LeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	l, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if l.EmployeeID == actor {
		return LeaveResponse{}, leaveerrors.ErrSelfDecision
	}

	release, err := s.locks.Acquire(ctx, leavebalance.LockKey(l.EmployeeID.String()), lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrTimeout) {
			return LeaveResponse{}, apperror.ErrLockTimeout
		}
		return LeaveResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	// Re-read under the lock; the pre-lock copy may be stale.
	l, err = s.repo.WithTx(tx).FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if !canTransition(l.Status, target) {
		return LeaveResponse{}, leaveerrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	l.Status = target
	l.ApprovedBy = &actor
	if target == StatusApproved {
		l.ApprovedAt = &now
	} else {
		l.RejectionReason = &reason
	}

	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	paid, err := s.isPaidType(ctx, l.LeaveTypeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if paid {
		year := l.StartDate.Year()
		balances := s.balances.WithTx(tx)
		if target == StatusApproved {
			err = leavebalance.Finalize(ctx, balances, l.EmployeeID.String(), l.LeaveTypeID.String(), year, l.TotalDays)
		} else {
			err = leavebalance.Release(ctx, balances, l.EmployeeID.String(), l.LeaveTypeID.String(), year, l.TotalDays)
		}
		if err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := s.enqueueDecisionEvent(ctx, tx, l, actorID, now); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decided",
		zap.String("leave_id", l.ID.String()),
		zap.String("decision", target),
		zap.String("decided_by", actorID),
	)

	return mapToResponse(*l), nil
}

// Withdraw lets the requesting employee take back a pending request.
func (s *service) Withdraw(ctx context.Context, leaveID, actorID string) (LeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	l, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID != actor {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrIllegalTransition
	}

	// The pending check repeats under the lock; a decision racing this
	// withdraw must not be cancelled through the owner's path.
	return s.cancelLocked(ctx, leaveID, l.EmployeeID.String(), StatusPending)
}

// Cancel revokes a pending or approved request and returns its days to the
// balance. Route policy decides who may call it.
func (s *service) Cancel(ctx context.Context, leaveID, actorID string) (LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	l, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	return s.cancelLocked(ctx, leaveID, l.EmployeeID.String(), "")
}

// cancelLocked cancels a request under the employee's lock. A non-empty
// fromStatus restricts the cancellation to requests still in that state on
// the locked re-read.
func (s *service) cancelLocked(ctx context.Context, leaveID, employeeID, fromStatus string) (LeaveResponse, error) {
	release, err := s.locks.Acquire(ctx, leavebalance.LockKey(employeeID), lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrTimeout) {
			return LeaveResponse{}, apperror.ErrLockTimeout
		}
		return LeaveResponse{}, err
	}
	defer release()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	l, err := s.repo.WithTx(tx).FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if fromStatus != "" && l.Status != fromStatus {
		return LeaveResponse{}, leaveerrors.ErrIllegalTransition
	}
	if !canTransition(l.Status, StatusCancelled) {
		return LeaveResponse{}, leaveerrors.ErrIllegalTransition
	}

	l.Status = StatusCancelled
	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	paid, err := s.isPaidType(ctx, l.LeaveTypeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if paid {
		year := l.StartDate.Year()
		if err := leavebalance.Release(ctx, s.balances.WithTx(tx), l.EmployeeID.String(), l.LeaveTypeID.String(), year, l.TotalDays); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave cancelled",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAll(leaves), nil
}

func (s *service) GetByID(ctx context.Context, leaveID string) (LeaveResponse, error) {
	l, err := s.loadLeave(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapAll(leaves), nil
}

// calendarForRange merges the holiday calendars of every year the range
// touches, so a request crossing New Year still sees January holidays.
func (s *service) calendarForRange(ctx context.Context, start, end time.Time) (*calendar.Calendar, error) {
	cal, err := s.calendars.CalendarForYear(ctx, start.Year())
	if err != nil {
		return nil, err
	}
	for y := start.Year() + 1; y <= end.Year(); y++ {
		next, err := s.calendars.CalendarForYear(ctx, y)
		if err != nil {
			return nil, err
		}
		cal = calendar.Merge(cal, next)
	}
	return cal, nil
}

func (s *service) isPaidType(ctx context.Context, leaveTypeID string) (bool, error) {
	lt, err := s.types.FindByID(ctx, leaveTypeID)
	if err != nil {
		return false, err
	}
	return lt.IsPaid, nil
}

func (s *service) loadLeave(ctx context.Context, leaveID string) (*Leave, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *gorm.DB, l *Leave, actorID string, at time.Time) error {
	event := events.LeaveDecidedEvent{
		EventType:   "leave." + l.Status,
		LeaveID:     l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		Decision:    l.Status,
		DecidedBy:   actorID,
		OccurredAt:  at,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapAll(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
