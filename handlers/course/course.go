package course

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/model"
	"github.com/studyshare/api/utils/cache"
	"github.com/studyshare/api/utils/response"
	"gorm.io/gorm"
)

const (
	courseListCacheKey = "courses:all"
	courseListCacheTTL = 10 * time.Minute
)

// CourseHandler serves the course reference data used by the upload form and
// the search filters.
type CourseHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, redisCache *cache.RedisCache) *CourseHandler {
	return &CourseHandler{
		db:    db,
		cache: redisCache,
	}
}

// CourseResponse is one course in the list payload.
type CourseResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// List returns all courses ordered by name. The list changes rarely, so it
// is cached; a cache failure falls through to the database.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached []CourseResponse
		if err := h.cache.GetJSON(c.Context(), courseListCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	var courses []model.Course
	if err := h.db.Order("name ASC").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to load courses")
	}

	result := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, CourseResponse{
			ID:   course.ID,
			Name: course.Name,
		})
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), courseListCacheKey, result, courseListCacheTTL)
	}

	return response.Success(c, result)
}
