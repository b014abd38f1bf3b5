package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leavehub/internal/shared/contextutil"
)

// ContextLogger attaches a request-scoped logger carrying the request id and
// caller id, retrievable downstream via contextutil without a gin dependency.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := logger.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("user_id", c.GetString("user_id")),
		)

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
