package rbac

import (
	"github.com/sourabhverman/people-hub-pro/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/permissions/:role", middleware.RBACAuthorize(service, "rbac", "read"), handler.Permissions)
	}
}
