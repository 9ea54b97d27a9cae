package services

import (
	"context"
	"strings"

	"github.com/studyshare/api/model"
	"gorm.io/gorm"
)

// CommentService manages document comments
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new comment service
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment creates a comment on a document and returns it with the
// author preloaded for display.
func (s *CommentService) CreateComment(ctx context.Context, documentID, userID uint, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	var document model.Document
	if err := s.db.WithContext(ctx).First(&document, documentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := model.Comment{
		DocumentID: documentID,
		UserID:     userID,
		Content:    content,
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	comment.User = user
	return &comment, nil
}

// CommentsForDocument returns a document's comments newest-first with their
// authors preloaded.
func (s *CommentService) CommentsForDocument(ctx context.Context, documentID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&comments).
		Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment permanently removes a comment. Ownership is enforced here,
// not by the caller: only the original author may delete.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	var comment model.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != requesterID {
		return ErrNotCommentAuthor
	}

	return s.db.WithContext(ctx).Delete(&comment).Error
}
