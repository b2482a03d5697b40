package handlers

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	accounts  *services.AccountService
	relations *services.RelationshipManager
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts *services.AccountService, relations *services.RelationshipManager) *UserHandler {
	return &UserHandler{accounts: accounts, relations: relations}
}

// RegisterProfileRoutes registers user profile-related routes. admin is the group
// guarded by the admin role.
func (h *UserHandler) RegisterProfileRoutes(g, admin *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile/username", h.UpdateUsername)
	g.DELETE("/profile", h.DeleteUser)
	g.GET("/users/:id", h.GetUser)

	admin.PUT("/users/:id/ban", h.Ban)
	admin.DELETE("/users/:id/ban", h.Unban)
	admin.DELETE("/users/:id", h.AdminDeleteUser)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.accounts.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, user.ToCompact())
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.accounts.GetUser(ctx, userID)
	if err != nil {
		return respondError(err)
	}
	counts, err := h.relations.FollowCounts(ctx, userID)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"user": user, "follow_counts": counts})
}

// UpdateUsername renames the authenticated user
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateUsernameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.ChangeUsername(c.Request().Context(), userID, req.Username)
	if err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, user)
}

// DeleteUser deletes the authenticated user and all of their content
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	return h.deleteUser(c, userID)
}

func (h *UserHandler) AdminDeleteUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	return h.deleteUser(c, userID)
}

func (h *UserHandler) deleteUser(c echo.Context, userID uint) error {
	if _, err := h.relations.DeleteUser(c.Request().Context(), userID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) Ban(c echo.Context) error {
	return h.setBanned(c, true)
}

func (h *UserHandler) Unban(c echo.Context) error {
	return h.setBanned(c, false)
}

func (h *UserHandler) setBanned(c echo.Context, banned bool) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.accounts.SetBanned(c.Request().Context(), userID, banned); err != nil {
		return respondError(err)
	}
	return success(c, http.StatusOK, echo.Map{"id": userID, "banned": banned})
}
