package model

import (
	"time"
)

// User represents a registered user in the system.
// A user is created either at signup (credential login, PasswordHash set) or
// at first OAuth login (OAuthProvider/OAuthID set); a user may have both.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `json:"-"` // empty for OAuth-only users
	OAuthProvider string    `gorm:"type:varchar(50)" json:"-"`
	OAuthID       string    `gorm:"type:varchar(255)" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	Role          string    `gorm:"type:varchar(20);default:'STUDENT'" json:"role"` // STUDENT, ADMIN
	TokenVersion  int       `gorm:"default:0" json:"-"`                             // Increment to invalidate all user tokens
	JoinedAt      time.Time `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Documents []Document     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings   []Rating       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments  []Comment      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Views     []DocumentView `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
