package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finbook/internal/adapter/http/handler"
	"github.com/iho/finbook/internal/adapter/http/middleware"
	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	GroupHandler       *handler.GroupHandler
	TourHandler        *handler.TourHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	JWTManager         *auth.JWTManager
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Bearer auth when a JWT manager is configured
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Get("/summary", cfg.TransactionHandler.Summary)
		r.Get("/overview", cfg.TransactionHandler.Overview)

		// Groups
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", cfg.GroupHandler.Create)
			r.Get("/", cfg.GroupHandler.List)
			r.Put("/{id}", cfg.GroupHandler.Update)
			r.Delete("/{id}", cfg.GroupHandler.Delete)
		})

		// Tours
		r.Route("/tours", func(r chi.Router) {
			r.Post("/", cfg.TourHandler.Create)
			r.Get("/", cfg.TourHandler.List)
			r.Get("/{id}", cfg.TourHandler.Get)
			r.Put("/{id}", cfg.TourHandler.Update)
			r.Delete("/{id}", cfg.TourHandler.Delete)
			r.Post("/{id}/members", cfg.TourHandler.AddMember)
			r.Post("/{id}/expenses", cfg.TourHandler.AddExpense)
			r.Delete("/{id}/expenses/{expenseId}", cfg.TourHandler.DeleteExpense)
			r.Get("/{id}/balances", cfg.TourHandler.Balances)
			r.Get("/{id}/settlements", cfg.TourHandler.Settlements)
		})
	})

	return r
}
