package exitreq

import (
	"github.com/sourabhverman/people-hub-pro/internal/middleware"
	"github.com/sourabhverman/people-hub-pro/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	exits := r.Group("/exits")
	exits.Use(middleware.AuthMiddleware())
	{
		exits.POST("",
			middleware.RBACAuthorize(rbacService, "exit", "create"),
			middleware.Idempotency(rdb),
			handler.Initiate,
		)
		exits.GET("/my", middleware.RBACAuthorize(rbacService, "exit", "read"), handler.GetMine)
		exits.GET("", middleware.RBACAuthorize(rbacService, "exit", "hr_approve"), handler.GetAll)
		exits.GET("/:id", middleware.RBACAuthorize(rbacService, "exit", "read"), handler.GetByID)

		exits.POST("/:id/manager-approve", middleware.RBACAuthorize(rbacService, "exit", "manager_approve"), handler.ManagerApprove)
		exits.POST("/:id/hr-approve", middleware.RBACAuthorize(rbacService, "exit", "hr_approve"), handler.HRApprove)
		exits.PUT("/:id/checklist", middleware.RBACAuthorize(rbacService, "exit", "complete"), handler.UpdateChecklist)
		exits.POST("/:id/complete", middleware.RBACAuthorize(rbacService, "exit", "complete"), handler.Complete)
		exits.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "exit", "cancel"), handler.Cancel)
	}
}
