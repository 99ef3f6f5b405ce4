package middleware

import (
	"strings"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/response"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID   = "currentUserID"
	ContextKeyUserRole = "currentUserRole"
)

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authentication token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired authentication token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth attaches the user id when a valid token is present but never
// rejects the request. Used on public routes that personalise when logged in.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := utils.ParseToken(token); err == nil {
				c.Set(ContextKeyUserID, claims.UserID)
			}
		}
		c.Next()
	}
}

// GetCurrentUserID reads the authenticated user id from the gin context.
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// UserRoleFetcher loads an account's role for the role middlewares.
type UserRoleFetcher func(userID int64) (string, error)

// StaffRequired admits moderators and admins. Must run after AuthRequired.
func StaffRequired(roleFetcher UserRoleFetcher) gin.HandlerFunc {
	return requireRole(roleFetcher, model.RoleModerator, model.RoleAdmin)
}

// AdminRequired admits admins only. Must run after AuthRequired.
func AdminRequired(roleFetcher UserRoleFetcher) gin.HandlerFunc {
	return requireRole(roleFetcher, model.RoleAdmin)
}

func requireRole(roleFetcher UserRoleFetcher, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			response.Unauthorized(c, "missing authentication context")
			c.Abort()
			return
		}

		role, err := roleFetcher(userID)
		if err != nil {
			response.Unauthorized(c, "account does not exist")
			c.Abort()
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Set(ContextKeyUserRole, role)
				c.Next()
				return
			}
		}

		response.Forbidden(c, "insufficient privileges")
		c.Abort()
	}
}

// extractToken pulls the bearer token out of the Authorization header.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
