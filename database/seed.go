package database

import (
	"log"

	"github.com/studyshare/api/model"
	"gorm.io/gorm"
)

// SeedCourses inserts the initial course catalogue when the table is empty.
// Courses are reference data created out of band; this only covers fresh
// development databases.
func SeedCourses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	names := []string{
		"Algorithms and Data Structures",
		"Database Systems",
		"Operating Systems",
		"Computer Networks",
		"Linear Algebra",
		"Software Engineering",
	}

	for _, name := range names {
		if err := db.Create(&model.Course{Name: name}).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d courses", len(names))
	return nil
}
