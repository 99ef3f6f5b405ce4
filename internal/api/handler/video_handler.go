package handler

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxVideoSize = int64(500 * 1024 * 1024) // 500MB

var allowedVideoFormats = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true,
	".mkv": true, ".flv": true, ".webm": true,
}

var allowedCoverFormats = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Upload POST /api/v1/videos/upload
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	file, err := c.FormFile("video_file")
	if err != nil {
		response.BadRequest(c, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoFormats[ext] {
		response.BadRequest(c, "unsupported video format, allowed: mp4, avi, mov, mkv, flv, webm")
		return
	}

	if file.Size > maxVideoSize || file.Size == 0 {
		response.BadRequest(c, "invalid file size (must be non-empty, at most 500MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "failed to open uploaded file")
		return
	}
	defer f.Close()

	media := &service.UploadFile{
		Reader:      f,
		Size:        file.Size,
		Format:      strings.TrimPrefix(ext, "."),
		ContentType: file.Header.Get("Content-Type"),
	}

	cover, coverFile, err := openCoverFile(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if coverFile != nil {
		defer coverFile.Close()
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Upload(currentUserID, &req, media, cover)
	if err != nil {
		logger.Error("Upload video failed", zap.Error(err))
		response.InternalError(c, "failed to upload video: "+err.Error())
		return
	}

	response.Created(c, "video uploaded", info)
}

// openCoverFile reads the optional thumbnail part of the upload form.
func openCoverFile(c *gin.Context) (*service.UploadFile, multipart.File, error) {
	file, err := c.FormFile("cover_file")
	if err != nil {
		return nil, nil, nil // optional
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedCoverFormats[ext] {
		return nil, nil, errors.New("unsupported thumbnail format, allowed: jpg, jpeg, png, webp")
	}

	f, err := file.Open()
	if err != nil {
		return nil, nil, errors.New("failed to open thumbnail file")
	}

	return &service.UploadFile{
		Reader:      f,
		Size:        file.Size,
		Format:      strings.TrimPrefix(ext, "."),
		ContentType: file.Header.Get("Content-Type"),
	}, f, nil
}

// GetFeed GET /api/v1/videos/feed (public)
func (h *VideoHandler) GetFeed(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.videoService.GetFeed(page, pageSize)
	if err != nil {
		logger.Error("Get video feed failed", zap.Error(err))
		response.InternalError(c, "failed to load the feed")
		return
	}

	response.OK(c, "ok", data)
}

// GetDetail GET /api/v1/videos/:id (public). Views are deduped per account,
// or per client IP for anonymous viewers.
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	viewerKey := c.ClientIP()
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		viewerKey = "u" + strconv.FormatInt(userID, 10)
	}

	info, err := h.videoService.GetDetail(c.Request.Context(), videoID, viewerKey)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "ok", info)
}

// UpdateVideo PUT /api/v1/videos/:id
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(videoID, actorID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video updated", info)
}

// DeleteVideo DELETE /api/v1/videos/:id (owner soft delete)
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.SoftDelete(videoID, actorID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video deleted", nil)
}

// GetUserVideos GET /api/v1/videos/user/:id (public)
func (h *VideoHandler) GetUserVideos(c *gin.Context) {
	authorID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.videoService.GetUserVideos(authorID, page, pageSize)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

// GetMyVideos GET /api/v1/videos/my/list
func (h *VideoHandler) GetMyVideos(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.videoService.GetUserVideos(userID, page, pageSize)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
