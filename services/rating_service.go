package services

import (
	"context"
	"math"
	"time"

	"github.com/studyshare/api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AverageRating computes the arithmetic mean of rating values rounded to one
// decimal place. An empty collection yields exactly 0, never NaN.
func AverageRating(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	total := 0
	for _, v := range values {
		total += v
	}

	avg := float64(total) / float64(len(values))
	return math.Round(avg*10) / 10
}

// RatingService manages per-user document ratings
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// SubmitRating records or replaces the caller's rating for a document and
// returns the recomputed average. The write is a single conditional upsert
// against the (user_id, document_id) unique index, so concurrent re-rates
// from the same user cannot double-insert.
func (s *RatingService) SubmitRating(ctx context.Context, userID, documentID uint, value int) (float64, error) {
	if value < 1 || value > 5 {
		return 0, ErrInvalidRating
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	var document model.Document
	if err := s.db.WithContext(ctx).First(&document, documentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrDocumentNotFound
		}
		return 0, err
	}

	rating := model.Rating{
		UserID:     userID,
		DocumentID: documentID,
		Value:      value,
		CreatedAt:  time.Now(),
	}

	// Re-rating overwrites the value and resets the timestamp in place.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "document_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      rating.Value,
			"created_at": rating.CreatedAt,
		}),
	}).Create(&rating).Error
	if err != nil {
		return 0, err
	}

	values, err := s.RatingsForDocument(ctx, documentID)
	if err != nil {
		return 0, err
	}

	return AverageRating(values), nil
}

// RatingsForDocument returns all rating values for a document, the direct
// input to AverageRating.
func (s *RatingService) RatingsForDocument(ctx context.Context, documentID uint) ([]int, error) {
	var values []int
	err := s.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("document_id = ?", documentID).
		Pluck("value", &values).
		Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
