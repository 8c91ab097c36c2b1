package http

import (
	"net/http"

	"github.com/frontandrew/ridematch/internal/delivery/http/middleware"
	"github.com/frontandrew/ridematch/internal/domain"
	"github.com/frontandrew/ridematch/internal/pkg/config"
	"github.com/frontandrew/ridematch/internal/pkg/logger"
	"github.com/frontandrew/ridematch/internal/repository"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	matchHandler        *MatchHandler
	intentHandler       *IntentHandler
	availabilityHandler *AvailabilityHandler
	authHandler         *AuthHandler
	healthHandler       *HealthHandler
	tokenValidator      middleware.TokenValidator
	denylist            repository.TokenDenylist
	cors                config.CORSConfig
	logger              logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	matchHandler *MatchHandler,
	intentHandler *IntentHandler,
	availabilityHandler *AvailabilityHandler,
	authHandler *AuthHandler,
	healthHandler *HealthHandler,
	tokenValidator middleware.TokenValidator,
	denylist repository.TokenDenylist,
	cors config.CORSConfig,
	logger logger.Logger,
) *Router {
	return &Router{
		matchHandler:        matchHandler,
		intentHandler:       intentHandler,
		availabilityHandler: availabilityHandler,
		authHandler:         authHandler,
		healthHandler:       healthHandler,
		tokenValidator:      tokenValidator,
		denylist:            denylist,
		cors:                cors,
		logger:              logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.cors.AllowedOrigins,
		AllowedMethods: rt.cors.AllowedMethods,
		AllowedHeaders: rt.cors.AllowedHeaders,
	}))

	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/ready", rt.healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.RefreshToken)
		})

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenValidator, rt.denylist))

			r.Get("/auth/me", rt.authHandler.GetMe)
			r.Post("/auth/logout", rt.authHandler.Logout)

			r.Route("/intents", func(r chi.Router) {
				r.Post("/", rt.intentHandler.CreateIntent)
				r.Get("/{id}", rt.intentHandler.GetIntent)
			})

			r.Route("/availability", func(r chi.Router) {
				r.Get("/{id}", rt.availabilityHandler.GetAvailability)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleDriver, domain.RoleAdmin))
					r.Post("/", rt.availabilityHandler.CreateAvailability)
				})
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/create", rt.matchHandler.CreateMatch)
				r.Get("/{id}", rt.matchHandler.GetMatch)
			})
		})
	})

	return r
}
