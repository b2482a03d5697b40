package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/handlers"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}

// JWTAuthMiddleware checks for a valid JWT signed with secret, then loads the
// account so deleted or banned users lose access before their token expires. The
// caller's claims, user id and current role are stored in the context.
func JWTAuthMiddleware(secret string, accounts *services.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if !token.Valid || claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := accounts.GetUser(c.Request().Context(), claims.UserID)
			if errors.Is(err, apperr.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
			}
			if user.Banned {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is banned")
			}

			c.Set("user", claims)
			c.Set(handlers.ContextUserIDKey, user.ID)
			c.Set(handlers.ContextRoleKey, user.Role)

			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not role. It must run after an auth
// middleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if got, _ := c.Get(handlers.ContextRoleKey).(string); got != role {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
