package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/model"
	"github.com/studyshare/api/utils/response"
	"gorm.io/gorm"
)

// OAuthRequest carries the identity asserted by the OAuth provider after the
// frontend completes the provider flow.
type OAuthRequest struct {
	Provider string `json:"provider" validate:"required"`
	OAuthID  string `json:"oauth_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
}

// OAuthLogin reconciles an OAuth identity with the user table: an existing
// provider identity logs straight in, a matching email links the identity to
// that account, and anything else creates a fresh user.
func (h *AuthHandler) OAuthLogin(c *fiber.Ctx) error {
	var req OAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var user model.User
	err := h.db.Where("oauth_provider = ? AND oauth_id = ?", req.Provider, req.OAuthID).
		First(&user).Error

	if err == gorm.ErrRecordNotFound {
		// Link to an existing account with the same email, if any.
		err = h.db.Where("email = ?", req.Email).First(&user).Error
		if err == nil {
			user.OAuthProvider = req.Provider
			user.OAuthID = req.OAuthID
			if err := h.db.Model(&user).
				Updates(map[string]interface{}{
					"oauth_provider": req.Provider,
					"oauth_id":       req.OAuthID,
				}).Error; err != nil {
				return response.InternalServerError(c, "Failed to link account")
			}
		} else if err == gorm.ErrRecordNotFound {
			user = model.User{
				Email:         req.Email,
				Name:          req.Name,
				Role:          "STUDENT",
				OAuthProvider: req.Provider,
				OAuthID:       req.OAuthID,
			}
			if err := h.db.Create(&user).Error; err != nil {
				return response.InternalServerError(c, "Failed to create user")
			}
		} else {
			return response.InternalServerError(c, "Failed to look up user")
		}
	} else if err != nil {
		return response.InternalServerError(c, "Failed to look up user")
	}

	res, err := h.tokenResponse(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Success(c, res)
}
