package services

import (
	"context"
	"strings"

	"github.com/studyshare/api/model"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize matches the search grid on the client (3x3)
	DefaultPageSize = 9

	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortDownloads = "downloads"
	SortViews     = "views"
	SortRating    = "rating"
)

// SearchParams are the filters and paging inputs for a document search.
// Zero values mean "not set".
type SearchParams struct {
	Query     string
	CourseID  uint
	DocType   model.DocumentType
	MinRating int
	SortBy    string
	Page      int
	PageSize  int
}

// DocumentSummary is one search result row with its computed aggregates.
type DocumentSummary struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Course       string  `json:"course"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"totalRatings"`
	Downloads    int64   `json:"downloads"`
	UploadDate   string  `json:"uploadDate"` // YYYY-MM-DD
	Thumbnail    string  `json:"thumbnail,omitempty"`
}

// SearchResult is a page of summaries plus paging metadata. Total comes from
// an independent count query over the same filter, not from the page.
type SearchResult struct {
	Results    []DocumentSummary `json:"results"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// SearchService runs filtered, sorted, paginated document searches.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// filtered builds the shared filter query. The free-text query OR-matches
// title, course name and the tag list, case-insensitively; any match
// qualifies equally, there is no relevance score. minRating keeps documents
// with at least one individual rating at or above the threshold - this is
// deliberately not a filter on the average.
func (s *SearchService) filtered(ctx context.Context, p SearchParams) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&model.Document{}).
		Joins("JOIN courses ON courses.id = documents.course_id")

	if q := strings.TrimSpace(p.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(documents.title) LIKE ? OR LOWER(courses.name) LIKE ? OR LOWER(CAST(documents.tags AS TEXT)) LIKE ?",
			like, like, like,
		)
	}

	if p.CourseID != 0 {
		query = query.Where("documents.course_id = ?", p.CourseID)
	}

	if p.DocType != "" {
		query = query.Where("documents.doc_type = ?", p.DocType)
	}

	if p.MinRating > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM ratings WHERE ratings.document_id = documents.id AND ratings.value >= ?)",
			p.MinRating,
		)
	}

	return query
}

// orderClause maps a sort key to store-level ordering. The rating sort
// orders by each document's average rating before pagination, so the page
// window never hides the best-rated documents.
func orderClause(sortBy string) string {
	switch sortBy {
	case SortOldest:
		return "documents.upload_date ASC"
	case SortDownloads:
		return "documents.download_count DESC"
	case SortViews:
		return "documents.view_count DESC"
	case SortRating:
		return "(SELECT COALESCE(AVG(ratings.value), 0) FROM ratings WHERE ratings.document_id = documents.id) DESC"
	default: // newest
		return "documents.upload_date DESC"
	}
}

// Search returns one page of matching documents with rating aggregates.
// Pages are 1-indexed; a page beyond the last returns an empty result list
// while total and totalPages still describe the full match set.
func (s *SearchService) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.SortBy == "" {
		p.SortBy = SortNewest
	}

	var total int64
	if err := s.filtered(ctx, p).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (p.Page - 1) * p.PageSize

	var documents []model.Document
	err := s.filtered(ctx, p).
		Select("documents.*").
		Preload("Course").
		Preload("Ratings").
		Order(orderClause(p.SortBy)).
		Limit(p.PageSize).
		Offset(offset).
		Find(&documents).
		Error
	if err != nil {
		return nil, err
	}

	results := make([]DocumentSummary, 0, len(documents))
	for _, doc := range documents {
		values := make([]int, 0, len(doc.Ratings))
		for _, r := range doc.Ratings {
			values = append(values, r.Value)
		}

		results = append(results, DocumentSummary{
			ID:           doc.ID,
			Title:        doc.Title,
			Course:       doc.Course.Name,
			Rating:       AverageRating(values),
			TotalRatings: len(values),
			Downloads:    doc.DownloadCount,
			UploadDate:   doc.UploadDate.Format("2006-01-02"),
			Thumbnail:    doc.ThumbnailBase64,
		})
	}

	totalPages := int(total) / p.PageSize
	if int(total)%p.PageSize > 0 {
		totalPages++
	}

	return &SearchResult{
		Results:    results,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}, nil
}
