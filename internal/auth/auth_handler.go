package auth

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/apperror"
	"github.com/sourabhverman/people-hub-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	c.SetCookie("access_token", resp.AccessToken, int(resp.ExpiresIn), "/", "", false, true)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, MeResponse{
		UserID:     c.GetString("user_id"),
		EmployeeID: c.GetString("employee_id"),
		Role:       c.GetString("role"),
	}, nil)
}
