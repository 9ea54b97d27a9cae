package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyshare/api/model"
)

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Linear Algebra")
	doc := createDocument(t, db, "eigenvalues", course.ID, user.ID, model.DocumentTypeNotes, time.Now())

	comment, err := svc.CreateComment(ctx, doc.ID, user.ID, "very helpful")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if comment.User.Name != "alice" {
		t.Errorf("comment author = %q, want alice", comment.User.Name)
	}

	if _, err := svc.CreateComment(ctx, doc.ID, user.ID, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("blank content error = %v, want ErrEmptyContent", err)
	}

	if _, err := svc.CreateComment(ctx, doc.ID+99, user.ID, "hello"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("missing document error = %v, want ErrDocumentNotFound", err)
	}
}

func TestCommentsForDocumentNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Linear Algebra")
	doc := createDocument(t, db, "eigenvalues", course.ID, user.ID, model.DocumentTypeNotes, time.Now())

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third"} {
		comment := model.Comment{
			DocumentID: doc.ID,
			UserID:     user.ID,
			Content:    content,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&comment).Error; err != nil {
			t.Fatalf("failed to create comment: %v", err)
		}
	}

	comments, err := svc.CommentsForDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("CommentsForDocument failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("comment count = %d, want 3", len(comments))
	}
	if comments[0].Content != "third" || comments[2].Content != "first" {
		t.Errorf("comments not newest-first: %q, %q, %q",
			comments[0].Content, comments[1].Content, comments[2].Content)
	}
}

func TestDeleteCommentOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	course := createCourse(t, db, "Software Engineering")
	doc := createDocument(t, db, "design-patterns", course.ID, alice.ID, model.DocumentTypeNotes, time.Now())

	comment, err := svc.CreateComment(ctx, doc.ID, alice.ID, "mine")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	// Another user cannot delete it, and the row must survive the attempt.
	if err := svc.DeleteComment(ctx, comment.ID, bob.ID); !errors.Is(err, ErrNotCommentAuthor) {
		t.Errorf("foreign delete error = %v, want ErrNotCommentAuthor", err)
	}

	var count int64
	db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 1 {
		t.Fatalf("comment deleted by non-author")
	}

	if err := svc.DeleteComment(ctx, comment.ID, alice.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}

	db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Errorf("comment still present after author delete")
	}

	if err := svc.DeleteComment(ctx, comment.ID, alice.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("double delete error = %v, want ErrCommentNotFound", err)
	}
}
