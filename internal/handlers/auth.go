package handlers

import (
	"net/http"
	"time"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/firebase"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts     *services.AccountService
	firebaseAuth firebase.TokenVerifier
	jwtSecret    string
	jwtExpiry    time.Duration
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil, in which case
// Firebase login is unavailable.
func NewAuthHandler(accounts *services.AccountService, firebaseAuth firebase.TokenVerifier, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:     accounts,
		firebaseAuth: firebaseAuth,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateLocalUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local authentication with username or email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Authenticate(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return respondError(err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT, linking or
// creating the account on first login.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Firebase account has no email")
	}

	user, err := h.accounts.LinkFirebaseUser(ctx, token.UID, email, req.Username)
	if err != nil {
		return respondError(err)
	}
	if user.Banned {
		return echo.NewHTTPError(http.StatusUnauthorized, "account is banned")
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": localJWT})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
