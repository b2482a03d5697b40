package handlers

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content   *services.ContentService
	relations *services.RelationshipManager
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService, relations *services.RelationshipManager) *PostHandler {
	return &PostHandler{content: content, relations: relations}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id/visibility", h.SetVisibility)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.content.PublishPost(c.Request().Context(), userID, req.Title, req.Content)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusCreated, post)
}

// GetPost retrieves a post with its comments and likes
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	post, err := h.content.GetPost(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, post)
}

// SetVisibility hides or shows one of the caller's posts
func (h *PostHandler) SetVisibility(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	var req models.SetHiddenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.content.SetPostHidden(c.Request().Context(), userID, postID, *req.Hidden); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"id": postID, "hidden": *req.Hidden})
}

// DeletePost deletes one of the caller's posts with everything attached to it.
// Admins may delete any post.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id", "post")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if !isAdmin(c) {
		if err := h.content.RequireOwnPost(ctx, userID, postID); err != nil {
			return respondError(err)
		}
	}
	if _, err := h.relations.DeletePost(ctx, postID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
