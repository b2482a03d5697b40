package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/router"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/validators"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/config"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/firebase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize database connection
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.CloseDB()

	deps := router.Dependencies{DB: db.Gorm, Config: cfg, Logger: logger}

	// Firebase is optional
	ctx := context.Background()
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, logger)
		if err != nil {
			logger.Fatal("failed to initialize firebase", zap.Error(err))
		}
		deps.FirebaseAuth = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, logger)
	router.SetupRoutes(e, deps)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}
