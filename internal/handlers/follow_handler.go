package handlers

import (
	"context"
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	relations *services.RelationshipManager
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(relations *services.RelationshipManager) *FollowHandler {
	return &FollowHandler{relations: relations}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-counts", h.GetFollowCounts)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.relations.Subscribe(c.Request().Context(), currentUserID, targetID); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser unfollows a user. Unfollowing someone you do not follow succeeds.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := requireUserID(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.relations.Unsubscribe(c.Request().Context(), currentUserID, targetID); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"following": false})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listUsers(c, h.relations.Followers, "followers")
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listUsers(c, h.relations.Following, "following")
}

func (h *FollowHandler) GetFollowCounts(c echo.Context) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	counts, err := h.relations.FollowCounts(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, counts)
}

func (h *FollowHandler) listUsers(c echo.Context, list func(ctx context.Context, id uint) ([]models.User, error), key string) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	users, err := list(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return success(c, http.StatusOK, echo.Map{key: compact})
}
