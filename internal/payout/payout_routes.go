package payout

import (
	"go-payops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	payouts := r.Group("/payouts")
	payouts.Use(middleware.AuthContext())
	{
		payouts.GET("", middleware.RBACAuthorize(rbacService, "payout", "read"), handler.GetAll)
		payouts.GET("/:id", middleware.RBACAuthorize(rbacService, "payout", "read"), handler.GetByID)
		payouts.POST("/:id/mark-success", middleware.RBACAuthorize(rbacService, "payout", "settle"), handler.MarkSuccess)
		payouts.POST("/:id/mark-failed", middleware.RBACAuthorize(rbacService, "payout", "settle"), handler.MarkFailed)
	}
}
