package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gaapledger/internal/adapter/http/handler"
	"github.com/iho/gaapledger/internal/adapter/http/middleware"
	"github.com/iho/gaapledger/internal/usecase"
)

// Observer receives request and idempotency measurements.
type Observer interface {
	middleware.RequestObserver
	middleware.IdempotencyObserver
}

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BookHandler    *handler.BookHandler
	AccountHandler *handler.AccountHandler
	EntryHandler   *handler.EntryHandler
	LedgerHandler  *handler.LedgerHandler
	HealthHandler  *handler.HealthHandler

	// Optional. Without a store Idempotency-Key headers are ignored.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// Optional. MetricsHandler is served on /metrics when set.
	Metrics        Observer
	MetricsHandler http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			var observer middleware.IdempotencyObserver
			if cfg.Metrics != nil {
				observer = cfg.Metrics
			}
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger, observer)
			r.Use(idempotency.Wrap)
		}

		r.Route("/books", func(r chi.Router) {
			r.Post("/", cfg.BookHandler.Create)
			r.Get("/", cfg.BookHandler.List)

			r.Route("/{bookID}", func(r chi.Router) {
				r.Get("/", cfg.BookHandler.Get)

				// Accounts
				r.Post("/accounts", cfg.AccountHandler.Create)
				r.Get("/accounts", cfg.AccountHandler.List)
				r.Get("/accounts/{accountID}", cfg.AccountHandler.Get)

				// Journal
				r.Post("/entries", cfg.EntryHandler.Record)
				r.Get("/entries", cfg.EntryHandler.List)

				// Reports
				r.Get("/reports/balance-sheet", cfg.LedgerHandler.BalanceSheet)
				r.Get("/reports/income-statement", cfg.LedgerHandler.IncomeStatement)
				r.Get("/reports/cash-flow", cfg.LedgerHandler.CashFlow)
				r.Get("/reports/trial-balance", cfg.LedgerHandler.TrialBalance)
				r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
			})
		})
	})

	return r
}
