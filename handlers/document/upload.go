package document

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/model"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// Upload handles a multipart document upload. Expected form fields: title,
// course_id, doc_type, tags (comma-separated) and the file itself.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	courseID, err := strconv.ParseUint(c.FormValue("course_id"), 10, 32)
	if err != nil || courseID == 0 {
		return response.BadRequest(c, "A valid course_id is required")
	}

	docType := model.DocumentType(strings.ToUpper(c.FormValue("doc_type")))

	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}
	if fileHeader.Size > services.MaxUploadSize {
		return response.BadRequest(c, "File exceeds the 100MB upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.documents.UploadDocument(c.Context(), userID, services.UploadInput{
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		CourseID:    uint(courseID),
		DocType:     docType,
		Tags:        tags,
		FileName:    fileHeader.Filename,
		FileType:    contentType,
		Thumbnail:   c.FormValue("thumbnail"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDocumentType):
			return response.BadRequest(c, "Unknown document type")
		case errors.Is(err, services.ErrFileTooLarge):
			return response.BadRequest(c, "File exceeds the 100MB upload limit")
		case errors.Is(err, services.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrDuplicateDocument):
			return response.Conflict(c, "You have already uploaded this file to this course")
		default:
			return response.InternalServerError(c, "Failed to upload document")
		}
	}

	return response.Created(c, doc)
}
