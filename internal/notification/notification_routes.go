package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.Authorize(enforcer, "notification", "read"), handler.List)
		notifications.GET("/unread-count", middleware.Authorize(enforcer, "notification", "read"), handler.UnreadCount)
		notifications.PATCH("/:id/read", middleware.Authorize(enforcer, "notification", "update"), handler.MarkRead)
		notifications.PATCH("/read-all", middleware.Authorize(enforcer, "notification", "update"), handler.MarkAllRead)
		notifications.DELETE("/:id", middleware.Authorize(enforcer, "notification", "update"), handler.Delete)
	}
}
