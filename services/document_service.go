package services

import (
	"context"
	"errors"
	"log"

	"github.com/studyshare/api/model"
	"github.com/studyshare/api/services/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// MaxUploadSize is the hard cap on uploaded file size (100 MB).
	MaxUploadSize = 100 * 1024 * 1024

	relatedDocumentLimit = 3
)

// ObjectStore is the subset of the Spaces client the document service needs.
type ObjectStore interface {
	UploadDocument(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteDocument(ctx context.Context, key string) error
}

// UploadInput carries everything needed to store a new document. Description
// and Thumbnail are optional; the thumbnail is generated client-side and
// stored as-is.
type UploadInput struct {
	Title       string
	Description string
	CourseID    uint
	DocType     model.DocumentType
	Tags        []string
	FileName    string
	FileType    string
	Thumbnail   string // base64 data URL
	Data        []byte
}

// CommentView is a comment as shown on the document detail page. CanDelete
// reflects whether the viewing user authored it.
type CommentView struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	CanDelete bool   `json:"canDelete"`
}

// DocumentDetail is the full detail-page payload for one document.
type DocumentDetail struct {
	ID            uint                   `json:"id"`
	Title         string                 `json:"title"`
	CourseID      uint                   `json:"courseId"`
	Course        string                 `json:"course"`
	DocType       model.DocumentType     `json:"docType"`
	Author        string                 `json:"author"`
	FileURL       string                 `json:"fileUrl"`
	FileType      string                 `json:"fileType"`
	Tags          []string               `json:"tags"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Thumbnail     string                 `json:"thumbnail,omitempty"`
	UploadDate    string                 `json:"uploadDate"`
	ViewCount     int64                  `json:"viewCount"`
	DownloadCount int64                  `json:"downloadCount"`
	Rating        float64                `json:"rating"`
	TotalRatings  int                    `json:"totalRatings"`
	Comments      []CommentView          `json:"comments"`
	Related       []DocumentSummary      `json:"relatedDocuments"`
}

// DocumentService handles document upload and the detail page.
type DocumentService struct {
	db    *gorm.DB
	store ObjectStore
	views *ViewService
}

// NewDocumentService creates a new document service
func NewDocumentService(db *gorm.DB, store ObjectStore, views *ViewService) *DocumentService {
	return &DocumentService{
		db:    db,
		store: store,
		views: views,
	}
}

// UploadDocument validates, stores and records a new document. The same file
// name by the same author in the same course is rejected as a duplicate; a
// unique index backs this check so concurrent uploads cannot race past it.
func (s *DocumentService) UploadDocument(ctx context.Context, authorID uint, input UploadInput) (*model.Document, error) {
	if !model.ValidDocumentTypes[input.DocType] {
		return nil, ErrInvalidDocumentType
	}
	if len(input.Data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, input.CourseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing int64
	err := s.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("original_file_name = ? AND author_id = ? AND course_id = ?",
			input.FileName, authorID, input.CourseID).
		Count(&existing).
		Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateDocument
	}

	metadata := datatypes.JSONMap{
		"fileSize": len(input.Data),
	}
	if input.Description != "" {
		metadata["description"] = input.Description
	}
	if input.FileType == "application/pdf" {
		if pdfMeta, err := ExtractPDFMetadata(input.Data); err == nil {
			metadata["pageCount"] = pdfMeta.PageCount
			if pdfMeta.Summary != "" {
				metadata["summary"] = pdfMeta.Summary
			}
		} else {
			log.Printf("pdf metadata extraction skipped for %s: %v", input.FileName, err)
		}
	}

	key := storage.GenerateKey("documents", input.FileName)
	fileURL, err := s.store.UploadDocument(ctx, key, input.Data, input.FileType)
	if err != nil {
		return nil, err
	}

	document := model.Document{
		Title:            input.Title,
		CourseID:         input.CourseID,
		AuthorID:         authorID,
		DocType:          input.DocType,
		FileURL:          fileURL,
		FileType:         input.FileType,
		OriginalFileName: input.FileName,
		Tags:             datatypes.NewJSONSlice(input.Tags),
		Metadata:         metadata,
		ThumbnailBase64:  input.Thumbnail,
	}

	if err := s.db.WithContext(ctx).Create(&document).Error; err != nil {
		// The object is already in the bucket; remove it so failed uploads
		// do not leak storage.
		if delErr := s.store.DeleteDocument(ctx, key); delErr != nil {
			log.Printf("orphaned object %s could not be removed: %v", key, delErr)
		}
		// A unique-index violation here means a concurrent identical upload
		// won the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDocument
		}
		return nil, err
	}

	document.Course = course
	return &document, nil
}

// GetDocumentDetail loads the full detail payload for a document and records
// the view for the requesting user. Every call counts as one view.
func (s *DocumentService) GetDocumentDetail(ctx context.Context, documentID, viewerID uint) (*DocumentDetail, error) {
	if _, err := s.views.RecordView(ctx, viewerID, documentID); err != nil {
		return nil, err
	}

	var document model.Document
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Author").
		Preload("Ratings").
		First(&document, documentID).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	var comments []model.Comment
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&comments).
		Error
	if err != nil {
		return nil, err
	}

	commentViews := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Author:    c.User.Name,
			CreatedAt: c.CreatedAt.Format("2006-01-02"),
			CanDelete: c.UserID == viewerID,
		})
	}

	related, err := s.RelatedDocuments(ctx, document.CourseID, document.ID)
	if err != nil {
		return nil, err
	}

	values := make([]int, 0, len(document.Ratings))
	for _, r := range document.Ratings {
		values = append(values, r.Value)
	}

	return &DocumentDetail{
		ID:            document.ID,
		Title:         document.Title,
		CourseID:      document.CourseID,
		Course:        document.Course.Name,
		DocType:       document.DocType,
		Author:        document.Author.Name,
		FileURL:       document.FileURL,
		FileType:      document.FileType,
		Tags:          document.Tags,
		Metadata:      document.Metadata,
		Thumbnail:     document.ThumbnailBase64,
		UploadDate:    document.UploadDate.Format("2006-01-02"),
		ViewCount:     document.ViewCount,
		DownloadCount: document.DownloadCount,
		Rating:        AverageRating(values),
		TotalRatings:  len(values),
		Comments:      commentViews,
		Related:       related,
	}, nil
}

// RelatedDocuments returns up to three other documents from the same course,
// newest first. A document with no course siblings gets an empty list.
func (s *DocumentService) RelatedDocuments(ctx context.Context, courseID, excludeID uint) ([]DocumentSummary, error) {
	var documents []model.Document
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Ratings").
		Where("course_id = ? AND id <> ?", courseID, excludeID).
		Order("upload_date DESC").
		Limit(relatedDocumentLimit).
		Find(&documents).
		Error
	if err != nil {
		return nil, err
	}

	related := make([]DocumentSummary, 0, len(documents))
	for _, doc := range documents {
		values := make([]int, 0, len(doc.Ratings))
		for _, r := range doc.Ratings {
			values = append(values, r.Value)
		}
		related = append(related, DocumentSummary{
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

	return related, nil
}
