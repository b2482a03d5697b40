package handlers

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed and profile post listings
type FeedHandler struct {
	feed *services.FeedAggregator
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedAggregator) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// EnrichedPost is a post with compact author info and viewer-specific flags
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	LikeCount    int                `json:"like_count"`
	CommentCount int                `json:"comment_count"`
	IsLiked      bool               `json:"is_liked"`
}

func enrichPosts(posts []models.Post, viewerID uint) []EnrichedPost {
	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enriched[i] = EnrichedPost{
			Post:         p,
			LikeCount:    len(p.Likes),
			CommentCount: len(p.Comments),
		}
		if p.Author != nil {
			enriched[i].Author = p.Author.ToCompact()
		}
		for _, like := range p.Likes {
			if like.UserID == viewerID {
				enriched[i].IsLiked = true
				break
			}
		}
	}
	return enriched
}

// GetFeed returns the caller's posts and those of everyone they follow, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.feed.GetFeedPosts(c.Request().Context(), currentUserID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"posts": enrichPosts(posts, currentUserID)})
}

// GetUserPosts returns a user's profile posts. Authors see their hidden posts too.
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	authorID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	viewerID := getUserIDFromContext(c)
	var posts []models.Post
	if viewerID == authorID {
		posts, err = h.feed.GetOwnPosts(c.Request().Context(), authorID)
	} else {
		posts, err = h.feed.GetVisiblePosts(c.Request().Context(), authorID)
	}
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"posts": enrichPosts(posts, viewerID)})
}
