package rate

import (
	"go-payops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	rates := r.Group("/employee-rates")
	rates.Use(middleware.AuthContext())
	{
		rates.POST("", middleware.RBACAuthorize(rbacService, "rate", "create"), handler.Add)
		rates.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "rate", "read"), handler.History)
	}
}
