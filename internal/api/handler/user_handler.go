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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	info, err := h.userService.GetUserByID(id)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "ok", info)
}

// UpdateUser PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	actorID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.UpdateProfile(id, actorID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "profile updated", info)
}

// ListUsers GET /api/v1/users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var username, role *string
	if v := c.Query("username"); v != "" {
		username = &v
	}
	if v := c.Query("role"); v != "" {
		role = &v
	}

	data, err := h.userService.ListUsers(page, pageSize, username, role)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "ok", data)
}

// SetVerified POST /api/v1/users/:id/verify (admin)
func (h *UserHandler) SetVerified(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	verified := c.DefaultQuery("value", "true") != "false"

	info, err := h.userService.SetVerified(id, verified)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "verified flag updated", info)
}

// SetRole POST /api/v1/users/:id/role (admin)
func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required,oneof=user moderator admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	info, err := h.userService.SetRole(id, req.Role)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "role updated", info)
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUserBanned):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
