package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// Logout revokes the presented access token. The token stays on the
// blacklist until its natural expiry, after which the cleanup job drops it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	jti, ok := middleware.GetTokenJTI(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	authHeader := c.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	expiresAt, err := h.jwtManager.GetTokenExpiry(tokenString)
	if err != nil {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	if err := h.blacklistService.RevokeToken(c.Context(), jti, userID, expiresAt, "logout"); err != nil {
		return response.InternalServerError(c, "Failed to revoke token")
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
