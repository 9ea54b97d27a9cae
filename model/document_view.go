package model

import (
	"time"
)

// DocumentView is an append-only view event: one row per page load, never
// updated or deleted. It doubles as the audit trail and the input for the
// recently-viewed and recommendation queries.
type DocumentView struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_view_user_time" json:"user_id"`
	DocumentID uint      `gorm:"not null;index" json:"document_id"`
	ViewedAt   time.Time `gorm:"autoCreateTime;index:idx_view_user_time" json:"viewed_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Document Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}
