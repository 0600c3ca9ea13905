package payroll

import (
	"go-payops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	records := r.Group("/payroll-records")
	records.Use(middleware.AuthContext())
	{
		records.POST("/calculate", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Calculate)
		records.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		records.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		records.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
	}
}
