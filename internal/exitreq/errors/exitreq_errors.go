package exitreqerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrInvalidExitID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid exit request id",
		http.StatusBadRequest,
	)
	ErrInvalidLastWorkingDay = apperror.New(
		apperror.CodeInvalidInput,
		"last_working_day must be a future date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrExitNotFound = apperror.New(
		apperror.CodeNotFound,
		"exit request not found",
		http.StatusNotFound,
	)
	ErrActiveExitExists = apperror.New(
		apperror.CodeConflict,
		"an exit request is already in progress for this employee",
		http.StatusConflict,
	)
	ErrIllegalTransition = apperror.New(
		apperror.CodeInvalidState,
		"this action is not allowed in the request's current state",
		http.StatusConflict,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot approve your own exit request",
		http.StatusForbidden,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the exiting employee may perform this action",
		http.StatusForbidden,
	)
	ErrChecklistIncomplete = apperror.New(
		apperror.CodeInvalidState,
		"the clearance checklist must be complete before the exit can close",
		http.StatusConflict,
	)
)
