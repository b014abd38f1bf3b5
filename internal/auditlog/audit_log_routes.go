package auditlog

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
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("/resource/:resource_type/:resource_id", middleware.Authorize(enforcer, "audit_log", "read"), handler.ListByResource)
		logs.GET("/actor/:user_id", middleware.Authorize(enforcer, "audit_log", "read"), handler.ListByActor)
	}
}
