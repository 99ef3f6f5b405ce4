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

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create POST /api/v1/reports/:video_id
func (h *ReportHandler) Create(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("video_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	reporterID, _ := middleware.GetCurrentUserID(c)

	info, err := h.reportService.Create(reporterID, videoID, &req)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Created(c, "report filed", info)
}

// List GET /api/v1/reports (staff)
func (h *ReportHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	data, err := h.reportService.List(page, pageSize, status)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

// Review POST /api/v1/reports/:id/review (staff)
func (h *ReportHandler) Review(c *gin.Context) {
	reportID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	var req dto.ReportReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	reviewerID, _ := middleware.GetCurrentUserID(c)

	info, err := h.reportService.Review(reportID, reviewerID, req.Status)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, "report reviewed", info)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDuplicateReport),
		errors.Is(err, service.ErrReportAlreadyClosed):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Report operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
