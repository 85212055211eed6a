package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/plumehq/plume-api/internal/config"
	"github.com/plumehq/plume-api/internal/platform/postgres"
	"github.com/plumehq/plume-api/internal/service"
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/plumehq/plume-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	postStore store.PostStore

	// Service interfaces
	jwtService  auth.JWTService
	hasher      auth.PasswordHasher
	userService service.UserService
	postService service.PostService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// maxConcurrent 0 defaults to GOMAXPROCS
	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost, 0)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	app.userService = service.NewUserService(
		app.userStore,
		app.postStore,
		app.hasher,
		db,
		logger,
	)
	app.postService = service.NewPostService(
		app.postStore,
		app.userStore,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
