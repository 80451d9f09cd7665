package leavebalance

import (
	"net/http"
	"strconv"
	"time"

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
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year == 0 {
		return time.Now().UTC().Year()
	}
	return year
}

// GetMine returns the caller's balances for the requested (default current)
// year.
func (h *Handler) GetMine(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.GetAllForEmployee(c.Request.Context(), employeeID, yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetAllForEmployee(c.Request.Context(), c.Param("employeeId"), yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Seed(c *gin.Context) {
	var req SeedBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http seed balance validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Seed(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}
