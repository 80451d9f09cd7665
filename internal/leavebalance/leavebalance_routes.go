package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/my", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMine)
		balances.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.GetByEmployee)
		balances.POST("", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Seed)
	}
}
