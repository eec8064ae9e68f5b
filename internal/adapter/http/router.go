package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/pocketbank/internal/adapter/http/handler"
	"github.com/iho/pocketbank/internal/adapter/http/middleware"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
	"github.com/iho/pocketbank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler         *handler.UserHandler
	AccountHandler      *handler.AccountHandler
	TransactionHandler  *handler.TransactionHandler
	LoanHandler         *handler.LoanHandler
	FixedDepositHandler *handler.FixedDepositHandler
	AdminHandler        *handler.AdminHandler
	HealthHandler       *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter

	// Metrics enables request metrics; MetricsHandler is served on /metrics.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Actor)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Register)
			r.Get("/{id}", cfg.UserHandler.Get)
			r.Put("/{id}", cfg.UserHandler.UpdateProfile)
			r.Get("/{id}/accounts", cfg.AccountHandler.ListByOwner)
			r.Get("/{id}/loans", cfg.LoanHandler.ListByOwner)
			r.Get("/{id}/fixed-deposits", cfg.FixedDepositHandler.ListByOwner)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/by-number/{number}", cfg.AccountHandler.GetByNumber)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/transactions/recent", cfg.TransactionHandler.RecentByAccount)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/deposit", cfg.TransactionHandler.Deposit)
			r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
			r.Post("/transfer", cfg.TransactionHandler.Transfer)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Apply)
			r.Get("/{id}", cfg.LoanHandler.Get)
		})

		r.Route("/fixed-deposits", func(r chi.Router) {
			r.Post("/", cfg.FixedDepositHandler.Create)
			r.Get("/{id}", cfg.FixedDepositHandler.Get)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/summary", cfg.AdminHandler.Summary)

			r.Get("/accounts", cfg.AdminHandler.ListAccounts)
			r.Get("/accounts/pending", cfg.AdminHandler.ListPendingAccounts)
			r.Post("/accounts/{id}/approve", cfg.AdminHandler.ApproveAccount)
			r.Post("/accounts/{id}/suspend", cfg.AdminHandler.SuspendAccount)
			r.Get("/accounts/{id}/reconciliation", cfg.AdminHandler.ReconcileAccount)

			r.Get("/loans", cfg.AdminHandler.ListLoans)
			r.Get("/loans/pending", cfg.AdminHandler.ListPendingLoans)
			r.Post("/loans/{id}/approve", cfg.AdminHandler.ApproveLoan)
			r.Post("/loans/{id}/reject", cfg.AdminHandler.RejectLoan)

			r.Get("/customers", cfg.AdminHandler.ListCustomers)
			r.Get("/transactions/recent", cfg.AdminHandler.RecentTransactions)
			r.Get("/fixed-deposits", cfg.AdminHandler.ListFixedDeposits)

			r.Get("/reconciliation", cfg.AdminHandler.Reconciliation)
			r.Get("/reconciliation/consistency", cfg.AdminHandler.Consistency)
			r.Get("/audit-logs", cfg.AdminHandler.AuditLogs)
		})
	})

	return r
}
