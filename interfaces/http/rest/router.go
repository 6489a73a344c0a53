package rest

import (
	"net/http"

	"merculy-backend/infrastructure/di"
	"merculy-backend/interfaces/http/rest/handlers"
	"merculy-backend/interfaces/http/rest/middleware"
	pkgerrors "merculy-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	logger := rt.container.Logger

	router := chi.NewRouter()

	errorHandler := pkgerrors.NewErrorHandler(logger, rt.container.Config.IsDevelopment())

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.merculy.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(rt.container.AuthService, logger)
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/oauth", authHandler.OAuth)
		})

		newsHandler := handlers.NewNewsHandler(rt.container.NewsService, logger)
		r.Get("/news/topics", newsHandler.ListTopics)
		r.Get("/news/channels", newsHandler.ListChannels)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.container.JWTValidator, logger))

			userHandler := handlers.NewUserHandler(rt.container.UserService, logger)
			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me", userHandler.UpdatePreferences)

			newsletterHandler := handlers.NewNewsletterHandler(
				rt.container.Assembler, rt.container.NewsletterService, logger)
			r.Post("/newsletters/generate", newsletterHandler.Generate)
			r.Get("/newsletters", newsletterHandler.List)
			r.Get("/newsletters/{newsletterID}", newsletterHandler.Get)
			r.Delete("/newsletters/{newsletterID}", newsletterHandler.Delete)

			r.Get("/news/articles/{articleID}", newsHandler.GetArticle)
			if rt.container.Config.EnableScraper {
				r.Post("/news/scrape", newsHandler.Scrape)
			}
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
