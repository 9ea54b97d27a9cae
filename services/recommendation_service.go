package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/studyshare/api/model"
	"github.com/studyshare/api/utils/cache"
	"gorm.io/gorm"
)

const (
	// recommendationViewWindow is how many recent view events are scanned to
	// derive course candidates. Wider than the course limit so repeat views of
	// the same course still leave room for others.
	recommendationViewWindow = 10

	recommendationCacheTTL = 5 * time.Minute
)

// CourseRecommendation is one recommended course with aggregate stats over
// all of its documents, not just the ones the user viewed.
type CourseRecommendation struct {
	CourseID      uint           `json:"courseId"`
	CourseName    string         `json:"courseName"`
	DocumentCount int64          `json:"documentCount"`
	TypeBreakdown map[string]int `json:"typeBreakdown"`
	AverageRating float64        `json:"averageRating"`
}

// RecommendationService derives course recommendations from a user's recent
// viewing history. Results are cached in Redis for a short TTL; the cache is
// optional and a nil or failing cache silently degrades to database reads.
type RecommendationService struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(db *gorm.DB, redisCache *cache.RedisCache) *RecommendationService {
	return &RecommendationService{
		db:    db,
		cache: redisCache,
	}
}

// RecommendCourses returns up to limit distinct courses from the user's most
// recent views, most recent first. A user with no viewing history gets an
// empty list, never an error.
func (s *RecommendationService) RecommendCourses(ctx context.Context, userID uint, limit int) ([]CourseRecommendation, error) {
	if limit <= 0 {
		limit = 3
	}

	cacheKey := fmt.Sprintf("recommendations:user:%d:limit:%d", userID, limit)
	if s.cache != nil {
		var cached []CourseRecommendation
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	courseIDs, err := s.recentCourseIDs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []CourseRecommendation{}, nil
	}

	recommendations := make([]CourseRecommendation, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		rec, err := s.courseStats(ctx, courseID)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, *rec)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, recommendations, recommendationCacheTTL); err != nil {
			log.Printf("recommendation cache write failed: %v", err)
		}
	}

	return recommendations, nil
}

// recentCourseIDs walks the user's view events newest-first and keeps each
// course the first time it appears, up to limit distinct courses.
func (s *RecommendationService) recentCourseIDs(ctx context.Context, userID uint, limit int) ([]uint, error) {
	var views []model.DocumentView
	err := s.db.WithContext(ctx).
		Preload("Document").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(recommendationViewWindow).
		Find(&views).
		Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0, limit)
	for _, v := range views {
		courseID := v.Document.CourseID
		if courseID == 0 || seen[courseID] {
			continue
		}
		seen[courseID] = true
		ids = append(ids, courseID)
		if len(ids) == limit {
			break
		}
	}

	return ids, nil
}

// courseStats aggregates the document type breakdown and overall average
// rating across every document in the course.
func (s *RecommendationService) courseStats(ctx context.Context, courseID uint) (*CourseRecommendation, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	type typeCount struct {
		DocType string
		Count   int64
	}
	var counts []typeCount
	err := s.db.WithContext(ctx).
		Model(&model.Document{}).
		Select("doc_type, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("doc_type").
		Scan(&counts).
		Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int)
	var documentCount int64
	for _, c := range counts {
		breakdown[c.DocType] = int(c.Count)
		documentCount += c.Count
	}

	var values []int
	err = s.db.WithContext(ctx).
		Model(&model.Rating{}).
		Joins("JOIN documents ON documents.id = ratings.document_id").
		Where("documents.course_id = ?", courseID).
		Pluck("ratings.value", &values).
		Error
	if err != nil {
		return nil, err
	}

	return &CourseRecommendation{
		CourseID:      course.ID,
		CourseName:    course.Name,
		DocumentCount: documentCount,
		TypeBreakdown: breakdown,
		AverageRating: AverageRating(values),
	}, nil
}
