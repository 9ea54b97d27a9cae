package document

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshare/api/services"
	"github.com/studyshare/api/utils/middleware"
	"github.com/studyshare/api/utils/response"
)

// CommentRequest is the body for posting a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateComment posts a comment on a document.
func (h *DocumentHandler) CreateComment(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	comment, err := h.comments.CreateComment(c.Context(), documentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			return response.BadRequest(c, "Comment content is required")
		case errors.Is(err, services.ErrDocumentNotFound):
			return response.NotFound(c, "Document not found")
		default:
			return response.InternalServerError(c, "Failed to create comment")
		}
	}

	return response.Created(c, services.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    comment.User.Name,
		CreatedAt: comment.CreatedAt.Format("2006-01-02"),
		CanDelete: true,
	})
}

// DeleteComment removes a comment. Only the author may delete; a
// mismatched requester gets 403 regardless of their role.
func (h *DocumentHandler) DeleteComment(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Params("commentId"), 10, 32)
	if err != nil || commentID == 0 {
		return response.BadRequest(c, "Invalid comment id")
	}

	if err := h.comments.DeleteComment(c.Context(), uint(commentID), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			return response.NotFound(c, "Comment not found")
		case errors.Is(err, services.ErrNotCommentAuthor):
			return response.Forbidden(c, "You can only delete your own comments")
		default:
			return response.InternalServerError(c, "Failed to delete comment")
		}
	}

	return response.SuccessWithMessage(c, "Comment deleted", nil)
}
