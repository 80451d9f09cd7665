package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.GetByYear)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Create)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Delete)
	}
}
