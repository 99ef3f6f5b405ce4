package handler

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.notificationService.List(userID, page, pageSize)
	if err != nil {
		logger.Error("List notifications failed", zap.Error(err))
		response.InternalError(c, "failed to load notifications")
		return
	}

	response.OK(c, "ok", data)
}

// MarkRead POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkRead(notificationID, userID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Mark notification read failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
		return
	}

	response.OK(c, "marked read", nil)
}

// MarkAllRead POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		logger.Error("Mark all notifications read failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
		return
	}

	response.OK(c, "all marked read", nil)
}
