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

// AdminHandler exposes the moderation endpoints: purge and ban/unban.
type AdminHandler struct {
	moderationService *service.ModerationService
}

func NewAdminHandler(moderationService *service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

// PurgeVideo DELETE /api/v1/admin/videos/:id (staff)
func (h *AdminHandler) PurgeVideo(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	if err := h.moderationService.PurgeVideo(videoID, actorID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "video purged", nil)
}

// BanUser POST /api/v1/admin/users/:id/ban (admin)
func (h *AdminHandler) BanUser(c *gin.Context) {
	targetID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	if err := h.moderationService.BanUser(targetID, actorID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "account banned", nil)
}

// UnbanUser POST /api/v1/admin/users/:id/unban (admin)
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	targetID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	if err := h.moderationService.UnbanUser(targetID, actorID); err != nil {
		handleAdminError(c, err)
		return
	}

	response.OK(c, "account unbanned", nil)
}

func handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrAlreadyBanned),
		errors.Is(err, service.ErrNotBanned):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Moderation operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
