package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-payops/internal/employee"
	"go-payops/internal/expense"
	"go-payops/internal/messaging/kafka"
	"go-payops/internal/middleware"
	"go-payops/internal/notification"
	"go-payops/internal/payout"
	"go-payops/internal/payroll"
	"go-payops/internal/payrollrun"
	"go-payops/internal/rate"
	"go-payops/internal/rbac"
	"go-payops/internal/rbac/infra"
	"go-payops/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	rateRepo := rate.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payoutRepo := payout.NewRepository(gormDB)
	runRepo := payrollrun.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	directory := employee.NewDirectory(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	notifier := notification.NewOutboxNotifier(outboxRepo)
	rateService := rate.NewService(db, rateRepo, directory)
	payrollService := payroll.NewService(db, payrollRepo, taskRepo, expenseRepo, rateService, directory)
	payoutService := payout.NewService(db, payoutRepo, notifier)
	runService := payrollrun.NewService(
		db,
		runRepo,
		payrollRepo,
		payoutService,
		payoutRepo,
		directory,
		notifier,
		outboxRepo,
		os.Getenv("PAYOUT_NOTIFICATION_TEMPLATE"),
	)

	// --- Handlers ---
	rateHandler := rate.NewHandler(rateService)
	payrollHandler := payroll.NewHandler(payrollService)
	payoutHandler := payout.NewHandler(payoutService)
	runHandler := payrollrun.NewHandlerWithRedis(runService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.ContextLogger(zap.L()))
	{
		rate.RegisterRoutes(api, rateHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService)
		payout.RegisterRoutes(api, payoutHandler, rbacService)
		payrollrun.RegisterRoutes(api, runHandler, rbacService, rdb)
	}

	return nil
}
