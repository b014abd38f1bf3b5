package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/response"
)

const defaultActorLimit = 50

type Handler struct {
	service Recorder
	logger  *zap.Logger
}

func NewHandler(service Recorder, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auditlog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit log request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListByResource(c *gin.Context) {
	resourceType := c.Param("resource_type")
	resourceID := c.Param("resource_id")

	rows, err := h.service.ListByResource(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(rows), nil)
}

func (h *Handler) ListByActor(c *gin.Context) {
	userID := c.Param("user_id")

	limit := defaultActorLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	rows, err := h.service.ListByActor(c.Request.Context(), userID, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(rows), nil)
}
