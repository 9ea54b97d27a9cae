package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyshare/api/model"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"no ratings", nil, 0},
		{"empty slice", []int{}, 0},
		{"single rating", []int{4}, 4.0},
		{"whole average", []int{4, 5, 3}, 4.0},
		{"rounds to one decimal", []int{4, 5}, 4.5},
		{"rounds down", []int{3, 3, 4}, 3.3},
		{"rounds up", []int{3, 4, 4}, 3.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageRating(tt.values); got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSubmitRatingReplacesExisting(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Database Systems")
	doc := createDocument(t, db, "b-trees", course.ID, user.ID, model.DocumentTypeNotes, time.Now())

	avg, err := svc.SubmitRating(ctx, user.ID, doc.ID, 3)
	if err != nil {
		t.Fatalf("first SubmitRating failed: %v", err)
	}
	if avg != 3.0 {
		t.Errorf("average after first rating = %v, want 3.0", avg)
	}

	avg, err = svc.SubmitRating(ctx, user.ID, doc.ID, 5)
	if err != nil {
		t.Fatalf("second SubmitRating failed: %v", err)
	}
	if avg != 5.0 {
		t.Errorf("average after re-rating = %v, want 5.0", avg)
	}

	var ratings []model.Rating
	if err := db.Where("document_id = ?", doc.ID).Find(&ratings).Error; err != nil {
		t.Fatalf("failed to load ratings: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("rating rows = %d, want 1", len(ratings))
	}
	if ratings[0].Value != 5 {
		t.Errorf("stored value = %d, want 5", ratings[0].Value)
	}
}

func TestSubmitRatingAveragesAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	course := createCourse(t, db, "Computer Networks")
	doc := createDocument(t, db, "tcp-notes", course.ID, alice.ID, model.DocumentTypeNotes, time.Now())

	if _, err := svc.SubmitRating(ctx, alice.ID, doc.ID, 4); err != nil {
		t.Fatalf("SubmitRating failed: %v", err)
	}

	avg, err := svc.SubmitRating(ctx, bob.ID, doc.ID, 5)
	if err != nil {
		t.Fatalf("SubmitRating failed: %v", err)
	}
	if avg != 4.5 {
		t.Errorf("average = %v, want 4.5", avg)
	}

	values, err := svc.RatingsForDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("RatingsForDocument failed: %v", err)
	}
	if len(values) != 2 {
		t.Errorf("rating count = %d, want 2", len(values))
	}
}

func TestSubmitRatingValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Operating Systems")
	doc := createDocument(t, db, "scheduling", course.ID, user.ID, model.DocumentTypeExam, time.Now())

	for _, value := range []int{0, -1, 6} {
		if _, err := svc.SubmitRating(ctx, user.ID, doc.ID, value); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("SubmitRating(value=%d) error = %v, want ErrInvalidRating", value, err)
		}
	}

	if _, err := svc.SubmitRating(ctx, user.ID, doc.ID+99, 4); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want ErrDocumentNotFound", err)
	}

	if _, err := svc.SubmitRating(ctx, user.ID+99, doc.ID, 4); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
