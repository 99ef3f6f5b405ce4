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

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Vote POST /api/v1/votes/:video_id
func (h *VoteHandler) Vote(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.voteService.Vote(userID, videoID, req.Type)
	if err != nil {
		handleVoteError(c, err)
		return
	}

	response.OK(c, "vote recorded", data)
}

// GetStatus GET /api/v1/votes/:video_id/status
func (h *VoteHandler) GetStatus(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.voteService.GetStatus(userID, videoID)
	if err != nil {
		handleVoteError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

func handleVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidVoteType):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Vote operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
