package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyshare/api/model"
)

func TestRecordView(t *testing.T) {
	db := newTestDB(t)
	svc := NewViewService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Operating Systems")
	doc := createDocument(t, db, "paging", course.ID, user.ID, model.DocumentTypeNotes, time.Now())

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordView(ctx, user.ID, doc.ID); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}

	var updated model.Document
	if err := db.First(&updated, doc.ID).Error; err != nil {
		t.Fatalf("failed to reload document: %v", err)
	}
	if updated.ViewCount != 3 {
		t.Errorf("view_count = %d, want 3", updated.ViewCount)
	}

	// Repeat views are never collapsed; each one appends an event.
	var events int64
	db.Model(&model.DocumentView{}).Where("document_id = ?", doc.ID).Count(&events)
	if events != 3 {
		t.Errorf("view events = %d, want 3", events)
	}

	if _, err := svc.RecordView(ctx, user.ID, doc.ID+99); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("missing document error = %v, want ErrDocumentNotFound", err)
	}
}

func TestIncrementDownloadCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewViewService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Computer Networks")
	doc := createDocument(t, db, "routing", course.ID, user.ID, model.DocumentTypeExam, time.Now())

	updated, err := svc.IncrementDownloadCount(ctx, doc.ID)
	if err != nil {
		t.Fatalf("IncrementDownloadCount failed: %v", err)
	}
	if updated.DownloadCount != 1 {
		t.Errorf("returned download_count = %d, want 1", updated.DownloadCount)
	}

	var reloaded model.Document
	db.First(&reloaded, doc.ID)
	if reloaded.DownloadCount != 1 {
		t.Errorf("stored download_count = %d, want 1", reloaded.DownloadCount)
	}
}

func TestRecentlyViewedDeduplicatesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewViewService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Database Systems")
	base := time.Now().Add(-time.Hour)

	docA := createDocument(t, db, "a", course.ID, user.ID, model.DocumentTypeNotes, base)
	docB := createDocument(t, db, "b", course.ID, user.ID, model.DocumentTypeNotes, base)
	docC := createDocument(t, db, "c", course.ID, user.ID, model.DocumentTypeNotes, base)

	// A viewed twice; most recent view order is C, A, B.
	viewDocument(t, db, user.ID, docA.ID, base.Add(1*time.Minute))
	viewDocument(t, db, user.ID, docB.ID, base.Add(2*time.Minute))
	viewDocument(t, db, user.ID, docA.ID, base.Add(3*time.Minute))
	viewDocument(t, db, user.ID, docC.ID, base.Add(4*time.Minute))

	documents, err := svc.RecentlyViewed(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("RecentlyViewed failed: %v", err)
	}

	if len(documents) != 3 {
		t.Fatalf("document count = %d, want 3", len(documents))
	}
	want := []uint{docC.ID, docA.ID, docB.ID}
	for i, doc := range documents {
		if doc.ID != want[i] {
			t.Errorf("documents[%d].ID = %d, want %d", i, doc.ID, want[i])
		}
	}
}

func TestRecentlyViewedEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewViewService(db)

	user := createUser(t, db, "alice")

	documents, err := svc.RecentlyViewed(context.Background(), user.ID, 3)
	if err != nil {
		t.Fatalf("RecentlyViewed failed: %v", err)
	}
	if len(documents) != 0 {
		t.Errorf("document count = %d, want 0", len(documents))
	}
}

func TestReconcileViewCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewViewService(db)
	ctx := context.Background()

	user := createUser(t, db, "alice")
	course := createCourse(t, db, "Algorithms and Data Structures")
	doc := createDocument(t, db, "sorting", course.ID, user.ID, model.DocumentTypeNotes, time.Now())

	viewDocument(t, db, user.ID, doc.ID, time.Now())
	viewDocument(t, db, user.ID, doc.ID, time.Now())

	// Counter drifted from the log.
	if err := db.Model(&model.Document{}).Where("id = ?", doc.ID).Update("view_count", 7).Error; err != nil {
		t.Fatalf("failed to set drifted counter: %v", err)
	}

	fixed, err := svc.ReconcileViewCounts(ctx)
	if err != nil {
		t.Fatalf("ReconcileViewCounts failed: %v", err)
	}
	if fixed != 1 {
		t.Errorf("fixed = %d, want 1", fixed)
	}

	var reloaded model.Document
	db.First(&reloaded, doc.ID)
	if reloaded.ViewCount != 2 {
		t.Errorf("view_count after reconcile = %d, want 2", reloaded.ViewCount)
	}

	// Second run finds nothing to fix.
	fixed, err = svc.ReconcileViewCounts(ctx)
	if err != nil {
		t.Fatalf("second ReconcileViewCounts failed: %v", err)
	}
	if fixed != 0 {
		t.Errorf("fixed on clean data = %d, want 0", fixed)
	}
}
