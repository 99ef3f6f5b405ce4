package handler

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/middleware"
	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/service"
	"github.com/ramdanolii14/nyantube-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an account
// @Summary Register
// @Description Create a new account. Requires a captcha token; account creation is capped per source IP per month.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "registration payload"
// @Success 201 {object} response.Response{data=dto.UserInfo} "account created"
// @Failure 400 {object} response.ErrorResponse "invalid payload or captcha"
// @Failure 429 {object} response.ErrorResponse "registration quota reached"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	userInfo, err := h.authService.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "registered", userInfo)
}

// Login verifies credentials
// @Summary Login
// @Description Exchange credentials for a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "login payload"
// @Success 200 {object} response.Response{data=dto.TokenData} "logged in"
// @Failure 401 {object} response.ErrorResponse "wrong credentials or banned account"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	tokenData, err := h.authService.Login(&req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "logged in", tokenData)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "ok", userInfo)
}

// UpdatePassword PUT /api/v1/auth/password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.UpdatePassword(userID, &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "password updated", nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCaptchaRejected):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRegistrationQuota):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserBanned):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, try again later")
	}
}
