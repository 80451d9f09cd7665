package policy

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
	policies := r.Group("/policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.GetAll)
		policies.GET("/my-acknowledgements", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.MyAcknowledgements)
		policies.GET("/:id", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.GetByID)
		policies.POST("", middleware.RBACAuthorize(rbacService, "policy", "manage"), handler.Create)
		policies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "policy", "manage"), handler.Deactivate)
		policies.POST("/:id/acknowledge", middleware.RBACAuthorize(rbacService, "policy", "acknowledge"), handler.Acknowledge)
		policies.GET("/:id/acknowledgements", middleware.RBACAuthorize(rbacService, "policy", "manage"), handler.Acknowledgements)
	}
}
