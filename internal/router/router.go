package router

import (
	"net/http"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/handlers"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/middleware"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/services"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/config"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/firebase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are built from. FirebaseAuth is
// optional; when set, API requests authenticate with Firebase ID tokens instead of
// local JWTs.
type Dependencies struct {
	DB           *gorm.DB
	Config       *config.Config
	Logger       *zap.Logger
	FirebaseAuth firebase.TokenVerifier
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger

	// --- Core services ---
	store := repositories.NewStore(deps.DB)
	notifier := services.NewNotificationDispatcher(store, logger.Named("notifications"))
	relations := services.NewRelationshipManager(store, notifier, logger.Named("relations"))
	feed := services.NewFeedAggregator(store, logger.Named("feed"))
	content := services.NewContentService(store, notifier, logger.Named("content"))
	accounts := services.NewAccountService(store, logger.Named("accounts"))

	// Health check - always accessible
	health := handlers.NewHealthHandler(deps.DB)
	e.GET("/health", health.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "dispatch api"})
	})

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accounts, deps.FirebaseAuth, deps.Config.JWTSecret, deps.Config.JWTExpiry)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if deps.FirebaseAuth != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, accounts))
		logger.Info("firebase authentication applied to /api/v1")
	} else {
		api.Use(middleware.JWTAuthMiddleware(deps.Config.JWTSecret, accounts))
		logger.Info("jwt authentication applied to /api/v1")
	}
	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))

	handlers.NewUserHandler(accounts, relations).RegisterProfileRoutes(api, admin)
	handlers.NewPostHandler(content, relations).RegisterPostRoutes(api)
	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api)
	handlers.NewFollowHandler(relations).RegisterFollowRoutes(api)
	handlers.NewCommentHandler(content).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(relations).RegisterLikeRoutes(api)
	handlers.NewReportHandler(relations).RegisterReportRoutes(api, admin)
	handlers.NewNotificationHandler(notifier).RegisterNotificationRoutes(api)

	logger.Info("routes configured", zap.Int("count", len(e.Routes())))
}
