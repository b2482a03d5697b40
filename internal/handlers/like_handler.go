package handlers

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	relations *services.RelationshipManager
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(relations *services.RelationshipManager) *LikeHandler {
	return &LikeHandler{relations: relations}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes", h.GetLikeSummary)
}

// LikePost adds the caller to the post's likes. Liking twice is not an error.
func (h *LikeHandler) LikePost(c echo.Context) error {
	return h.toggle(c, true)
}

// UnlikePost removes the caller from the post's likes
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	return h.toggle(c, false)
}

func (h *LikeHandler) toggle(c echo.Context, like bool) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "post_id", "post")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if like {
		err = h.relations.LikePost(ctx, userID, postID)
	} else {
		err = h.relations.UnlikePost(ctx, userID, postID)
	}
	if err != nil {
		return respondError(err)
	}

	summary, err := h.relations.LikeSummary(ctx, userID, postID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, summary)
}

// GetLikeSummary returns the like count and whether the caller liked the post
func (h *LikeHandler) GetLikeSummary(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id", "post")
	if err != nil {
		return err
	}

	summary, err := h.relations.LikeSummary(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, summary)
}
