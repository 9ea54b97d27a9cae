package services

import (
	"context"
	"testing"
	"time"

	"github.com/studyshare/api/model"
	"gorm.io/datatypes"
)

// seedSearchFixtures creates two courses with documents covering the filter
// and sort paths. Returns the database plus the IDs the assertions need.
func seedSearchFixtures(t *testing.T) (*SearchService, map[string]*model.Document, *model.Course, *model.Course) {
	t.Helper()

	db := newTestDB(t)
	svc := NewSearchService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	algebra := createCourse(t, db, "Linear Algebra")
	networks := createCourse(t, db, "Computer Networks")

	base := time.Now().Add(-24 * time.Hour)

	docs := map[string]*model.Document{}
	docs["matrices"] = createDocument(t, db, "Matrix Operations", algebra.ID, alice.ID, model.DocumentTypeNotes, base.Add(1*time.Hour))
	docs["exam"] = createDocument(t, db, "Midterm 2024", algebra.ID, bob.ID, model.DocumentTypeExam, base.Add(2*time.Hour))
	docs["tcp"] = createDocument(t, db, "TCP Deep Dive", networks.ID, alice.ID, model.DocumentTypeNotes, base.Add(3*time.Hour))

	// Tag match for the free-text query.
	if err := db.Model(docs["exam"]).
		Update("tags", datatypes.NewJSONSlice([]string{"matrix", "eigenvalues"})).Error; err != nil {
		t.Fatalf("failed to set tags: %v", err)
	}

	// Ratings: matrices has a split vote, tcp is top rated.
	rateDocument(t, db, alice.ID, docs["matrices"].ID, 5)
	rateDocument(t, db, bob.ID, docs["matrices"].ID, 1)
	rateDocument(t, db, bob.ID, docs["tcp"].ID, 5)

	// Counters for the downloads and views sorts.
	db.Model(docs["exam"]).Updates(map[string]interface{}{"download_count": 10, "view_count": 1})
	db.Model(docs["matrices"]).Updates(map[string]interface{}{"download_count": 2, "view_count": 20})

	return svc, docs, algebra, networks
}

func resultIDs(result *SearchResult) []uint {
	ids := make([]uint, 0, len(result.Results))
	for _, r := range result.Results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSearchFreeTextMatchesTitleCourseAndTags(t *testing.T) {
	svc, docs, _, _ := seedSearchFixtures(t)
	ctx := context.Background()

	// "matrix" hits the Matrix Operations title and the tagged exam.
	result, err := svc.Search(ctx, SearchParams{Query: "MATRIX"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("total = %d, want 2 (ids %v)", result.Total, resultIDs(result))
	}

	// Course name match pulls in every document of the course.
	result, err = svc.Search(ctx, SearchParams{Query: "networks"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 1 || result.Results[0].ID != docs["tcp"].ID {
		t.Errorf("course-name match = %v, want [%d]", resultIDs(result), docs["tcp"].ID)
	}

	// Blank query matches everything.
	result, err = svc.Search(ctx, SearchParams{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("unfiltered total = %d, want 3", result.Total)
	}
}

func TestSearchFilters(t *testing.T) {
	svc, docs, algebra, _ := seedSearchFixtures(t)
	ctx := context.Background()

	result, err := svc.Search(ctx, SearchParams{CourseID: algebra.ID})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("course filter total = %d, want 2", result.Total)
	}

	result, err = svc.Search(ctx, SearchParams{DocType: model.DocumentTypeExam})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 1 || result.Results[0].ID != docs["exam"].ID {
		t.Errorf("doc type filter = %v, want [%d]", resultIDs(result), docs["exam"].ID)
	}

	// Filters combine with AND.
	result, err = svc.Search(ctx, SearchParams{CourseID: algebra.ID, DocType: model.DocumentTypeNotes})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 1 || result.Results[0].ID != docs["matrices"].ID {
		t.Errorf("combined filter = %v, want [%d]", resultIDs(result), docs["matrices"].ID)
	}
}

func TestSearchMinRatingMatchesAnyIndividualRating(t *testing.T) {
	svc, docs, _, _ := seedSearchFixtures(t)
	ctx := context.Background()

	// matrices has ratings [5, 1]: the average (3.0) is below the threshold
	// but the single 5 qualifies it.
	result, err := svc.Search(ctx, SearchParams{MinRating: 4})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("minRating total = %d, want 2 (ids %v)", result.Total, resultIDs(result))
	}
	for _, r := range result.Results {
		if r.ID == docs["exam"].ID {
			t.Errorf("unrated document %d passed minRating filter", r.ID)
		}
	}
}

func TestSearchSortOrders(t *testing.T) {
	svc, docs, _, _ := seedSearchFixtures(t)
	ctx := context.Background()

	tests := []struct {
		sortBy string
		want   []uint
	}{
		{SortNewest, []uint{docs["tcp"].ID, docs["exam"].ID, docs["matrices"].ID}},
		{SortOldest, []uint{docs["matrices"].ID, docs["exam"].ID, docs["tcp"].ID}},
		{SortDownloads, []uint{docs["exam"].ID, docs["matrices"].ID, docs["tcp"].ID}},
		{SortViews, []uint{docs["matrices"].ID, docs["exam"].ID, docs["tcp"].ID}},
		// Averages: tcp 5.0, matrices 3.0, exam 0.
		{SortRating, []uint{docs["tcp"].ID, docs["matrices"].ID, docs["exam"].ID}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			result, err := svc.Search(ctx, SearchParams{SortBy: tt.sortBy})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			got := resultIDs(result)
			if len(got) != len(tt.want) {
				t.Fatalf("result count = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSearchPagination(t *testing.T) {
	svc, _, _, _ := seedSearchFixtures(t)
	ctx := context.Background()

	page1, err := svc.Search(ctx, SearchParams{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page1.Results) != 2 || page1.Total != 3 || page1.TotalPages != 2 {
		t.Errorf("page 1: results=%d total=%d totalPages=%d, want 2/3/2",
			len(page1.Results), page1.Total, page1.TotalPages)
	}

	page2, err := svc.Search(ctx, SearchParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page2.Results) != 1 {
		t.Errorf("page 2 results = %d, want 1", len(page2.Results))
	}

	// No overlap between pages.
	for _, a := range page1.Results {
		for _, b := range page2.Results {
			if a.ID == b.ID {
				t.Errorf("document %d appears on both pages", a.ID)
			}
		}
	}

	// A page past the end is empty but keeps the totals.
	page9, err := svc.Search(ctx, SearchParams{Page: 9, PageSize: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page9.Results) != 0 || page9.Total != 3 || page9.TotalPages != 2 {
		t.Errorf("past-end page: results=%d total=%d totalPages=%d, want 0/3/2",
			len(page9.Results), page9.Total, page9.TotalPages)
	}

	// Defaults apply when paging params are absent.
	defaults, err := svc.Search(ctx, SearchParams{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if defaults.Page != 1 || defaults.PageSize != DefaultPageSize {
		t.Errorf("defaults: page=%d pageSize=%d, want 1/%d", defaults.Page, defaults.PageSize, DefaultPageSize)
	}
}

func TestSearchSummaryAggregates(t *testing.T) {
	svc, docs, _, _ := seedSearchFixtures(t)
	ctx := context.Background()

	result, err := svc.Search(ctx, SearchParams{Query: "Matrix Operations"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total < 1 {
		t.Fatalf("no results for title query")
	}

	var summary *DocumentSummary
	for i := range result.Results {
		if result.Results[i].ID == docs["matrices"].ID {
			summary = &result.Results[i]
		}
	}
	if summary == nil {
		t.Fatalf("matrices document missing from results %v", resultIDs(result))
	}

	if summary.Rating != 3.0 {
		t.Errorf("rating = %v, want 3.0", summary.Rating)
	}
	if summary.TotalRatings != 2 {
		t.Errorf("totalRatings = %d, want 2", summary.TotalRatings)
	}
	if summary.Course != "Linear Algebra" {
		t.Errorf("course = %q, want Linear Algebra", summary.Course)
	}
	if summary.UploadDate != docs["matrices"].UploadDate.Format("2006-01-02") {
		t.Errorf("uploadDate = %q, want %q", summary.UploadDate, docs["matrices"].UploadDate.Format("2006-01-02"))
	}
}
