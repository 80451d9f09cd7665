package leavebalance

import (
	"context"
	"errors"
	"fmt"

	leavebalanceerrors "github.com/sourabhverman/people-hub-pro/internal/leavebalance/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger mutations run inside the caller's transaction via the repository it
// passes in, and the caller must hold the key lock for LockKey across the
// whole check-then-mutate section. The leave workflow is the only caller;
// nothing else writes leave_balances.

// LockKey names the exclusive lock serializing leave mutations for one
// employee. The scope is the employee, not the balance row, because the
// overlap check on submission spans all of the employee's leave types.
func LockKey(employeeID string) string {
	return fmt.Sprintf("leave:%s", employeeID)
}

// Reserve consumes days from the balance, failing without mutation when the
// remaining entitlement does not cover the request.
func Reserve(ctx context.Context, repo Repository, employeeID, leaveTypeID string, year, days int) error {
	b, err := repo.FindForKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavebalanceerrors.ErrBalanceNotFound
		}
		return err
	}

	if b.Remaining() < days {
		return leavebalanceerrors.ErrInsufficientBalance
	}

	b.UsedDays += days
	return repo.Update(ctx, b)
}

// Release returns previously reserved days. Driving used_days below zero
// means the ledger and the request log disagree; the error is surfaced, never
// clamped.
func Release(ctx context.Context, repo Repository, employeeID, leaveTypeID string, year, days int) error {
	b, err := repo.FindForKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavebalanceerrors.ErrBalanceNotFound
		}
		return err
	}

	if b.UsedDays-days < 0 {
		zap.L().Named("leavebalance.ledger").Error("ledger underflow",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Int("used_days", b.UsedDays),
			zap.Int("release_days", days),
		)
		return leavebalanceerrors.ErrLedgerUnderflow
	}

	b.UsedDays -= days
	return repo.Update(ctx, b)
}

// Finalize confirms a prior reservation on approval. Reservation already
// consumed the days, so there is nothing to move; the call exists to make the
// state machine's ledger effects explicit at every transition.
func Finalize(ctx context.Context, repo Repository, employeeID, leaveTypeID string, year, days int) error {
	return nil
}
