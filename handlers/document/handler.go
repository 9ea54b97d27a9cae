package document

import (
	"github.com/studyshare/api/services"
)

// DocumentHandler handles document upload, detail, comments and ratings.
type DocumentHandler struct {
	documents *services.DocumentService
	comments  *services.CommentService
	ratings   *services.RatingService
	views     *services.ViewService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documents *services.DocumentService,
	comments *services.CommentService,
	ratings *services.RatingService,
	views *services.ViewService,
) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		comments:  comments,
		ratings:   ratings,
		views:     views,
	}
}
