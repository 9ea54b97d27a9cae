package recommendation

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// RecommendationHandler serves personalized course recommendations and the
// recently-viewed list.
type RecommendationHandler struct {
	recommendations *services.RecommendationService
	views           *services.ViewService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendations *services.RecommendationService, views *services.ViewService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		views:           views,
	}
}

func limitQuery(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 || limit > 10 {
		return 3
	}
	return limit
}

// RecommendedCourses returns courses drawn from the caller's recent views.
// No viewing history yields an empty list.
func (h *RecommendationHandler) RecommendedCourses(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	recommendations, err := h.recommendations.RecommendCourses(c.Context(), userID, limitQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load recommendations")
	}

	return response.Success(c, recommendations)
}

// RecentlyViewed returns the caller's most recently viewed documents as
// summaries, newest first.
func (h *RecommendationHandler) RecentlyViewed(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	documents, err := h.views.RecentlyViewed(c.Context(), userID, limitQuery(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load recently viewed documents")
	}

	summaries := make([]services.DocumentSummary, 0, len(documents))
	for _, doc := range documents {
		values := make([]int, 0, len(doc.Ratings))
		for _, r := range doc.Ratings {
			values = append(values, r.Value)
		}
		summaries = append(summaries, services.DocumentSummary{
			ID:           doc.ID,
			Title:        doc.Title,
			Course:       doc.Course.Name,
			Rating:       services.AverageRating(values),
			TotalRatings: len(values),
			Downloads:    doc.DownloadCount,
			UploadDate:   doc.UploadDate.Format("2006-01-02"),
			Thumbnail:    doc.ThumbnailBase64,
		})
	}

	return response.Success(c, summaries)
}
