package policyerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid policy id",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid effective_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"policy not found",
		http.StatusNotFound,
	)
	ErrPolicyInactive = apperror.New(
		apperror.CodeInvalidState,
		"this policy is no longer active",
		http.StatusConflict,
	)
	ErrAlreadyAcknowledged = apperror.New(
		apperror.CodeConflict,
		"you have already acknowledged this policy",
		http.StatusConflict,
	)
)
