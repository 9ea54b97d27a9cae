package model

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentType classifies an uploaded study material.
type DocumentType string

const (
	DocumentTypeExam       DocumentType = "EXAM"
	DocumentTypeNotes      DocumentType = "NOTES"
	DocumentTypeAssignment DocumentType = "ASSIGNMENT"
	DocumentTypeOther      DocumentType = "OTHER_RESOURCES"
)

// ValidDocumentTypes is the allow-list used when parsing client input.
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypeExam:       true,
	DocumentTypeNotes:      true,
	DocumentTypeAssignment: true,
	DocumentTypeOther:      true,
}

// Document represents an uploaded study-material file. Title, tags and
// metadata are immutable after upload; only the view and download counters
// change afterwards.
//
// (original_file_name, author_id, course_id) carries a unique index so two
// concurrent identical uploads cannot both slip past the application-level
// duplicate check.
type Document struct {
	ID               uint                       `gorm:"primaryKey" json:"id"`
	Title            string                     `gorm:"not null" json:"title"`
	CourseID         uint                       `gorm:"not null;index;uniqueIndex:idx_doc_file_author_course" json:"course_id"`
	AuthorID         uint                       `gorm:"not null;index;uniqueIndex:idx_doc_file_author_course" json:"author_id"`
	DocType          DocumentType               `gorm:"type:varchar(20);not null;index" json:"doc_type"`
	FileURL          string                     `gorm:"type:text;not null" json:"file_url"`
	FileType         string                     `gorm:"type:varchar(100)" json:"file_type"` // declared MIME type
	OriginalFileName string                     `gorm:"not null;uniqueIndex:idx_doc_file_author_course" json:"original_file_name"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	Metadata         datatypes.JSONMap          `json:"metadata,omitempty"` // file size, extracted summary, page count, ...
	ThumbnailBase64  string                     `gorm:"type:text" json:"thumbnail_base64,omitempty"`
	ViewCount        int64                      `gorm:"default:0" json:"view_count"`
	DownloadCount    int64                      `gorm:"default:0" json:"download_count"`
	UploadDate       time.Time                  `gorm:"autoCreateTime;index" json:"upload_date"`

	// Relationships
	Course   Course         `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Author   User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Ratings  []Rating       `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment      `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
	Views    []DocumentView `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
}
