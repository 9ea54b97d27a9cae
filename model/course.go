package model

import (
	"time"
)

// Course is read-mostly reference data created out of band (seed/admin).
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// Relationships
	Documents []Document `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
