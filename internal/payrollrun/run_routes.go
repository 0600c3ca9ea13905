package payrollrun

import (
	"go-payops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthContext())
	{
		runs.POST("",
			middleware.RBACAuthorize(rbacService, "payroll_run", "create"),
			middleware.RateLimitByIP(1, 3),
			middleware.Idempotency(rdb),
			handler.Run,
		)
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetByID)
		runs.GET("/:id/bank-export", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.BankExport)
	}
}
