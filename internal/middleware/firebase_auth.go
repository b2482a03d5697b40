package middleware

import (
	"errors"
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/handlers"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/firebase"
	"github.com/labstack/echo/v4"
)

// FirebaseAuthMiddleware verifies Firebase ID tokens and resolves the linked local
// account. Accounts are linked through the /auth/firebase-login endpoint.
func FirebaseAuthMiddleware(verifier firebase.TokenVerifier, accounts *services.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := accounts.GetByFirebaseUID(ctx, token.UID)
			if errors.Is(err, apperr.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "No account linked to this Firebase user")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
			}
			if user.Banned {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is banned")
			}

			c.Set("firebaseUID", token.UID)
			c.Set(handlers.ContextUserIDKey, user.ID)
			c.Set(handlers.ContextRoleKey, user.Role)

			return next(c)
		}
	}
}
