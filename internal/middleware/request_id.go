package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leavehub/internal/shared/contextutil"
)

// RequestID propagates the inbound X-Request-ID, minting one when absent, so
// logs and dispatched events can be correlated across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)
		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
