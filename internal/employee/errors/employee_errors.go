package employeeerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date_of_joining, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"department, designation or manager does not exist",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"reporting manager not found",
		http.StatusNotFound,
	)
	ErrManagerExited = apperror.New(
		apperror.CodeInvalidState,
		"an exited employee cannot be a reporting manager",
		http.StatusConflict,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"an employee cannot report to themselves",
		http.StatusBadRequest,
	)
	ErrManagerCycle = apperror.New(
		apperror.CodeConflict,
		"this assignment would create a reporting cycle",
		http.StatusConflict,
	)
)
