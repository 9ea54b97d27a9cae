package services

import "errors"

// Sentinel errors returned by the services; handlers translate these into
// HTTP status codes.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrNotCommentAuthor = errors.New("comment belongs to another user")

	ErrEmptyContent        = errors.New("content is required")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidDocumentType = errors.New("unknown document type")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrDuplicateDocument   = errors.New("document already uploaded for this course")
)
