package handler

import (
	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos GET /api/v1/search/videos?q=... (public)
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid search query: "+err.Error())
		return
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), &req)
	if err != nil {
		logger.Error("Search failed", zap.String("query", req.Query), zap.Error(err))
		response.InternalError(c, "search failed, try again later")
		return
	}

	response.OK(c, "ok", data)
}
