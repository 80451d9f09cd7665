package payroll

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
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "manage"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		payslips.GET("/my",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetMine,
		)
		payslips.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "manage"),
			handler.GetByEmployee,
		)
		payslips.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "manage"),
			handler.GetByID,
		)
		payslips.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "manage"),
			handler.Update,
		)
		payslips.POST("/:id/lock",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "manage"),
			handler.Lock,
		)
	}
}
