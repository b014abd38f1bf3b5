package leaverequest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"leavehub/internal/middleware"
	"leavehub/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer rbac.Enforcer,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.Authorize(enforcer, "leave_request", "create"), handler.Create)
		requests.GET("", middleware.Authorize(enforcer, "leave_request", "read"), handler.List)
		requests.GET("/mine", middleware.Authorize(enforcer, "leave_request", "read"), handler.ListMine)
		requests.GET("/pending", middleware.Authorize(enforcer, "leave_request", "approve"), handler.ListPending)
		requests.GET("/team", middleware.Authorize(enforcer, "leave_request", "approve"), handler.ListTeam)
		requests.GET("/active", middleware.Authorize(enforcer, "leave_request", "read"), handler.ListActive)
		requests.GET("/monthly-approved", middleware.Authorize(enforcer, "leave_request", "approve"), handler.MonthlyApproved)
		requests.GET("/:id", middleware.Authorize(enforcer, "leave_request", "read"), handler.GetByID)
		requests.PATCH("/:id/approve", middleware.Authorize(enforcer, "leave_request", "approve"), handler.Approve)
		requests.PATCH("/:id/reject", middleware.Authorize(enforcer, "leave_request", "approve"), handler.Reject)
		requests.PATCH("/:id/cancel", middleware.Authorize(enforcer, "leave_request", "update"), handler.Cancel)
		requests.DELETE("/:id", middleware.Authorize(enforcer, "leave_request", "delete"), handler.Delete)
		requests.PATCH("/:id/restore", middleware.Authorize(enforcer, "leave_request", "delete"), handler.Restore)

		// Bulk updates replay cleanly: the idempotency middleware returns the
		// cached response when the same Idempotency-Key is retried.
		requests.PATCH("/bulk",
			middleware.Authorize(enforcer, "leave_request", "update"),
			middleware.Idempotency(rdb),
			handler.BulkUpdate,
		)
	}
}
