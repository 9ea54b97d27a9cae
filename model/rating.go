package model

import (
	"time"
)

// Rating is a single user's rating of a document. The composite unique index
// on (user_id, document_id) enforces at most one rating per pair; re-rating
// is a conditional upsert against that index.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_rating_user_document" json:"user_id"`
	DocumentID uint      `gorm:"not null;uniqueIndex:idx_rating_user_document;index" json:"document_id"`
	Value      int       `gorm:"not null" json:"value"` // expected domain 1-5
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}
