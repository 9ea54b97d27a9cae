package services

import (
	"context"

	"github.com/studyshare/api/model"
	"gorm.io/gorm"
)

// ViewService records document views and maintains the denormalized view and
// download counters.
type ViewService struct {
	db *gorm.DB
}

// NewViewService creates a new view service
func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{db: db}
}

// RecordView appends a view event and increments the document's view counter
// in one transaction, so a crash cannot leave the counter and the event log
// disagreeing. Repeat views by the same user are never deduplicated; every
// page load appends a new row.
func (s *ViewService) RecordView(ctx context.Context, userID, documentID uint) (*model.Document, error) {
	var document model.Document

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&document, documentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrDocumentNotFound
			}
			return err
		}

		view := model.DocumentView{
			UserID:     userID,
			DocumentID: documentID,
		}
		if err := tx.Create(&view).Error; err != nil {
			return err
		}

		if err := tx.Model(&document).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).
			Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	document.ViewCount++
	return &document, nil
}

// IncrementDownloadCount atomically bumps the download counter and returns
// the updated document.
func (s *ViewService) IncrementDownloadCount(ctx context.Context, documentID uint) (*model.Document, error) {
	var document model.Document
	if err := s.db.WithContext(ctx).First(&document, documentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&document).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).
		Error
	if err != nil {
		return nil, err
	}

	document.DownloadCount++
	return &document, nil
}

// RecentlyViewed returns the caller's most recently viewed documents, newest
// first, deduplicated by document with course and ratings preloaded.
func (s *ViewService) RecentlyViewed(ctx context.Context, userID uint, limit int) ([]model.Document, error) {
	if limit <= 0 {
		limit = 3
	}

	var views []model.DocumentView
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit * 10). // breadth before deduplication
		Find(&views).
		Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0, limit)
	for _, v := range views {
		if seen[v.DocumentID] {
			continue
		}
		seen[v.DocumentID] = true
		ids = append(ids, v.DocumentID)
		if len(ids) == limit {
			break
		}
	}

	if len(ids) == 0 {
		return []model.Document{}, nil
	}

	var documents []model.Document
	err = s.db.WithContext(ctx).
		Preload("Course").
		Preload("Ratings").
		Where("id IN ?", ids).
		Find(&documents).
		Error
	if err != nil {
		return nil, err
	}

	// Restore most-recently-viewed order; IN does not preserve it.
	byID := make(map[uint]model.Document, len(documents))
	for _, d := range documents {
		byID[d.ID] = d
	}
	ordered := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}

	return ordered, nil
}

// ReconcileViewCounts rewrites each document's view counter from the
// append-only event log. Run by the nightly cron job so historical drift
// between the counter and the log self-heals.
func (s *ViewService) ReconcileViewCounts(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("view_count <> (SELECT COUNT(*) FROM document_views WHERE document_views.document_id = documents.id)").
		Update("view_count", gorm.Expr("(SELECT COUNT(*) FROM document_views WHERE document_views.document_id = documents.id)"))

	return result.RowsAffected, result.Error
}
