package leavebalance

import (
	"github.com/gin-gonic/gin"

	"leavehub/internal/middleware"
	"leavehub/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer rbac.Enforcer,
) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/:user_id", middleware.Authorize(enforcer, "leave_balance", "read"), handler.GetByUser)
		balances.GET("/:user_id/summary", middleware.Authorize(enforcer, "leave_balance", "read"), handler.Summary)
		balances.POST("", middleware.Authorize(enforcer, "leave_balance", "manage"), handler.Upsert)
		balances.PUT("/:id", middleware.Authorize(enforcer, "leave_balance", "manage"), handler.Update)
		balances.POST("/carry-over", middleware.Authorize(enforcer, "leave_balance", "manage"), handler.CarryOver)
	}
}
