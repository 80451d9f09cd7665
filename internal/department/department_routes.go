package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetByID)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Create)
	}
}
