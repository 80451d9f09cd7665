package app

import (
	"github.com/sourabhverman/people-hub-pro/internal/auth"
	"github.com/sourabhverman/people-hub-pro/internal/department"
	"github.com/sourabhverman/people-hub-pro/internal/designation"
	"github.com/sourabhverman/people-hub-pro/internal/employee"
	"github.com/sourabhverman/people-hub-pro/internal/exitreq"
	"github.com/sourabhverman/people-hub-pro/internal/holiday"
	"github.com/sourabhverman/people-hub-pro/internal/leave"
	"github.com/sourabhverman/people-hub-pro/internal/leavebalance"
	"github.com/sourabhverman/people-hub-pro/internal/leavetype"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/middleware"
	"github.com/sourabhverman/people-hub-pro/internal/payroll"
	"github.com/sourabhverman/people-hub-pro/internal/policy"
	"github.com/sourabhverman/people-hub-pro/internal/rbac"
	"github.com/sourabhverman/people-hub-pro/internal/shared/counter"
	"github.com/sourabhverman/people-hub-pro/internal/shared/keylock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	designationRepo := designation.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	exitRepo := exitreq.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)

	// One locker serves every keyed workflow; leave and exit requests use
	// disjoint key prefixes.
	locker := keylock.New()

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	departmentService := department.NewService(departmentRepo, rdb)
	designationService := designation.NewService(designationRepo, rdb)
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo, outboxRepo, rdb)
	exitService := exitreq.NewService(gormDB, exitRepo, employeeRepo, outboxRepo, locker)
	holidayService := holiday.NewService(holidayRepo, rdb)
	leaveService := leave.NewService(gormDB, leaveRepo, leaveBalanceRepo, leaveTypeRepo, outboxRepo, holidayService, locker)
	leaveBalanceService := leavebalance.NewService(leaveBalanceRepo, leaveTypeRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	payrollService := payroll.NewService(payrollRepo)
	policyService := policy.NewService(policyRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	designationHandler := designation.NewHandler(designationService)
	employeeHandler := employee.NewHandler(employeeService)
	exitHandler := exitreq.NewHandler(exitService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	payrollHandler := payroll.NewHandler(payrollService)
	policyHandler := policy.NewHandler(policyService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		designation.RegisterRoutes(api, designationHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, rdb)
		exitreq.RegisterRoutes(api, exitHandler, rbacService, rdb)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
