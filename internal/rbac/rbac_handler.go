package rbac

import (
	"net/http"

	"github.com/sourabhverman/people-hub-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Permissions returns the effective policy rows for a role so operators can
// inspect what a role grants without reading source.
func (h *Handler) Permissions(c *gin.Context) {
	role := c.Param("role")

	perms := h.service.Permissions(role)
	rows := make([]gin.H, len(perms))
	for i, p := range perms {
		rows[i] = gin.H{"role": p[0], "resource": p[1], "action": p[2]}
	}

	response.Success(c, http.StatusOK, gin.H{"role": role, "permissions": rows}, nil)
}
