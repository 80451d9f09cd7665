package payrollerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year within a sensible range",
		http.StatusBadRequest,
	)
	ErrNegativeNetPay = apperror.New(
		apperror.CodeInvalidInput,
		"deductions cannot exceed gross pay",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrDuplicatePayslip = apperror.New(
		apperror.CodeConflict,
		"a payslip already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPayrollLocked = apperror.New(
		apperror.CodeInvalidState,
		"this payslip is locked and can no longer change",
		http.StatusConflict,
	)
)
