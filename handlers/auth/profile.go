package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, toUserResponse(user))
}
