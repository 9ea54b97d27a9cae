package search

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/model"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/response"
)

// SearchHandler serves the document search endpoint.
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search runs a filtered document search. Unknown or malformed filter values
// are treated as unset rather than rejected, matching how the search UI
// builds its query string.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	params := services.SearchParams{
		Query:  c.Query("query"),
		SortBy: c.Query("sortBy"),
	}

	if courseID, err := strconv.ParseUint(c.Query("courseId"), 10, 32); err == nil {
		params.CourseID = uint(courseID)
	}

	if docType := model.DocumentType(c.Query("docType")); model.ValidDocumentTypes[docType] {
		params.DocType = docType
	}

	if minRating, err := strconv.Atoi(c.Query("minRating")); err == nil && minRating >= 1 && minRating <= 5 {
		params.MinRating = minRating
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}

	if pageSize, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		params.PageSize = pageSize
	}

	result, err := h.search.Search(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Search failed")
	}

	return response.Success(c, result)
}
