package designationerrors

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
)

var (
	ErrInvalidDesignationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid designation id",
		http.StatusBadRequest,
	)
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"designation not found",
		http.StatusNotFound,
	)
	ErrDuplicateDesignation = apperror.New(
		apperror.CodeConflict,
		"a designation with this title already exists",
		http.StatusConflict,
	)
)
