package handler

import (
	"errors"
	"strconv"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/comments/:video_id
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(userID, videoID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "comment posted", info)
}

// Update PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Update(commentID, userID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comment updated", info)
}

// Delete DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(commentID, userID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comment deleted", nil)
}

// ListByVideo GET /api/v1/comments/video/:video_id (public)
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	page, pageSize := parsePagination(c)

	var parentID *int64
	if v := c.Query("parent_id"); v != "" {
		pid, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			parentID = &pid
		}
	}

	data, err := h.commentService.ListByVideo(videoID, parentID, page, pageSize)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

// ListReplies GET /api/v1/comments/:id/replies (public)
func (h *CommentHandler) ListReplies(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.commentService.ListReplies(commentID, page, pageSize)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission),
		errors.Is(err, service.ErrUserBanned):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCommentRateLimited):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, service.ErrCommentTooLong),
		errors.Is(err, service.ErrParentVideoMismatch),
		errors.Is(err, service.ErrReplyTooDeep):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
