package designation

import (
	"github.com/sourabhverman/people-hub-pro/internal/middleware"
	"github.com/sourabhverman/people-hub-pro/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware())
	{
		designations.GET("", middleware.RBACAuthorize(rbacService, "designation", "read"), handler.GetAll)
		designations.GET("/:id", middleware.RBACAuthorize(rbacService, "designation", "read"), handler.GetByID)
		designations.POST("", middleware.RBACAuthorize(rbacService, "designation", "manage"), handler.Create)
	}
}
