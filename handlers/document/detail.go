package document

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

func parseDocumentID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid document id")
	}
	return uint(id), nil
}

// Detail returns the full detail payload for a document and counts the
// request as a view.
func (h *DocumentHandler) Detail(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	detail, err := h.documents.GetDocumentDetail(c.Context(), documentID, userID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to load document")
	}

	return response.Success(c, detail)
}

// Download bumps the download counter. The client calls this right before
// fetching the file from its public URL.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	documentID, err := parseDocumentID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	doc, err := h.views.IncrementDownloadCount(c.Context(), documentID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to record download")
	}

	return response.Success(c, fiber.Map{
		"id":            doc.ID,
		"downloadCount": doc.DownloadCount,
		"fileUrl":       doc.FileURL,
	})
}
