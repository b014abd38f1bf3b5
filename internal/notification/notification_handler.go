package notification

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/response"
)

const unreadCountTTL = 30 * time.Second

type Handler struct {
	service Dispatcher
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Dispatcher, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	callerID := c.GetString("user_id")
	unreadOnly := c.DefaultQuery("unread", "false") == "true"

	resp, err := h.service.ListByUser(c.Request.Context(), callerID, unreadOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// UnreadCount serves the badge counter. The count is cached briefly in redis
// since clients poll it far more often than it changes.
func (h *Handler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := c.GetString("user_id")
	cacheKey := unreadCacheKey(callerID)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				response.Success(c, http.StatusOK, gin.H{"unread": count}, nil)
				return
			}
		}
	}

	count, err := h.service.UnreadCount(ctx, callerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Set(ctx, cacheKey, count, unreadCountTTL).Err(); err != nil {
			h.logger.Debug("unread count cache set failed", zap.Error(err))
		}
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.MarkRead(ctx, callerID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateUnreadCount(c, callerID)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := c.GetString("user_id")

	if err := h.service.MarkAllRead(ctx, callerID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateUnreadCount(c, callerID)
	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	callerID := c.GetString("user_id")
	id := c.Param("id")

	if err := h.service.Delete(ctx, callerID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateUnreadCount(c, callerID)
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) invalidateUnreadCount(c *gin.Context, callerID string) {
	if h.rdb == nil {
		return
	}
	if err := h.rdb.Del(c.Request.Context(), unreadCacheKey(callerID)).Err(); err != nil {
		h.logger.Debug("unread count cache invalidate failed", zap.Error(err))
	}
}

func unreadCacheKey(userID string) string {
	return fmt.Sprintf("notif:unread:%s", userID)
}
