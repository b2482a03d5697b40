package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middlewares
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// respondError maps service errors to HTTP errors. Untyped errors become a 500 that
// keeps the cause for the error handler's log.
func respondError(err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "Internal server error").SetInternal(err)
	}
	return echo.NewHTTPError(status, err.Error())
}

// getUserIDFromContext returns the authenticated user's id, or 0
func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(ContextUserIDKey).(uint)
	return id
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(ContextRoleKey).(string)
	return role == models.RoleAdmin
}

func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

func parseIDParam(c echo.Context, name, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+what+" ID")
	}
	return uint(id), nil
}

// bindAndValidate binds the request body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return respondError(err)
	}
	return nil
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}
