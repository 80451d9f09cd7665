package leavebalanceerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave balance for this employee, leave type and year",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance for the requested days",
		http.StatusConflict,
	)
	ErrBalanceAlreadySeeded = apperror.New(
		apperror.CodeConflict,
		"a balance already exists for this employee, leave type and year",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)

	// ErrLedgerUnderflow means a release would drive used_days below zero.
	// That is data corruption or a bug, never a user error; it is logged and
	// surfaced as a fatal operation failure rather than clamped.
	ErrLedgerUnderflow = apperror.New(
		apperror.CodeInvariantViolation,
		"leave ledger underflow detected",
		http.StatusInternalServerError,
	)
)
