package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plumehq/plume-api/internal/api"
	apiMiddleware "github.com/plumehq/plume-api/internal/api/middleware"
	"github.com/plumehq/plume-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Create API handlers using the application's services
	validator := api.NewValidator()
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, validator)
	userHandler := api.NewUserHandler(app.userService, validator)
	postHandler := api.NewPostHandler(app.postService, validator)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/login", authHandler.Login)

		// User endpoints (signup and profile management are public)
		r.Get("/users", userHandler.List)
		r.Post("/users", userHandler.Create)
		r.Get("/users/{userID}", userHandler.Get)
		r.Patch("/users/{userID}", userHandler.Update)
		r.Delete("/users/{userID}", userHandler.Delete)

		// Post endpoints; reads work with or without an identity attached
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/posts", postHandler.List)
			r.Post("/posts", postHandler.Create)
			r.Get("/posts/{postID}", postHandler.Get)
			r.Patch("/posts/{postID}", postHandler.Update)
			r.Delete("/posts/{postID}", postHandler.Delete)
		})

		// Routes requiring an authenticated identity
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/me", userHandler.Me)
		})
	})

	// Index endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"message": "Plume API",
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Unmatched routes answer with the API's JSON not-found body
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})

	return r
}
