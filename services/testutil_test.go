package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/studyshare/api/database"
	"github.com/studyshare/api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// SQLite only supports one writer; a second connection would also get a
	// separate empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := model.User{
		Email: fmt.Sprintf("%s@example.com", name),
		Name:  name,
		Role:  "STUDENT",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return &user
}

func createCourse(t *testing.T, db *gorm.DB, name string) *model.Course {
	t.Helper()

	course := model.Course{Name: name}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course %s: %v", name, err)
	}
	return &course
}

func createDocument(t *testing.T, db *gorm.DB, title string, courseID, authorID uint, docType model.DocumentType, uploadedAt time.Time) *model.Document {
	t.Helper()

	doc := model.Document{
		Title:            title,
		CourseID:         courseID,
		AuthorID:         authorID,
		DocType:          docType,
		FileURL:          "https://cdn.example.com/" + title,
		FileType:         "application/pdf",
		OriginalFileName: title + ".pdf",
		UploadDate:       uploadedAt,
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("failed to create document %s: %v", title, err)
	}
	return &doc
}

func rateDocument(t *testing.T, db *gorm.DB, userID, documentID uint, value int) {
	t.Helper()

	rating := model.Rating{
		UserID:     userID,
		DocumentID: documentID,
		Value:      value,
	}
	if err := db.Create(&rating).Error; err != nil {
		t.Fatalf("failed to rate document %d: %v", documentID, err)
	}
}

func viewDocument(t *testing.T, db *gorm.DB, userID, documentID uint, viewedAt time.Time) {
	t.Helper()

	view := model.DocumentView{
		UserID:     userID,
		DocumentID: documentID,
		ViewedAt:   viewedAt,
	}
	if err := db.Create(&view).Error; err != nil {
		t.Fatalf("failed to record view of document %d: %v", documentID, err)
	}
}
