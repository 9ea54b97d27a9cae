package document

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// RatingRequest is the body for submitting a rating.
type RatingRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// SubmitRating records or replaces the caller's rating and returns the new
// average, so the client can refresh the stars without a second request.
func (h *DocumentHandler) SubmitRating(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	average, err := h.ratings.SubmitRating(c.Context(), userID, documentID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		case errors.Is(err, services.ErrDocumentNotFound):
			return response.NotFound(c, "Document not found")
		default:
			return response.InternalServerError(c, "Failed to submit rating")
		}
	}

	return response.Success(c, fiber.Map{
		"averageRating": average,
	})
}
