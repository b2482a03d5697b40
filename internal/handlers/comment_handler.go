package handlers

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment on a post, optionally as a reply to another
// comment on the same post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "post_id", "post")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.content.AddComment(c.Request().Context(), userID, postID, req.Content, req.ReplyTo)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusCreated, comment)
}

// GetCommentsByPostID lists a post's comments, oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id", "post")
	if err != nil {
		return err
	}

	comments, err := h.content.ListComments(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"comments": comments})
}

// DeleteComment deletes one of the caller's comments
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "id", "comment")
	if err != nil {
		return err
	}

	if err := h.content.DeleteComment(c.Request().Context(), userID, commentID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
