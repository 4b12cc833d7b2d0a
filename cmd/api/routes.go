package main

import (
	"net/http"

	"github.com/rs/zerolog"

	httphandlers "moneytracker/internal/interfaces/http"
	"moneytracker/internal/shared/config"
	"moneytracker/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)

	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(deps.Gate)(h)
	}

	mux.Handle("/api/transactions", protect(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/{id}", protect(deps.TransactionHandler.HandleTransactionByID))
	mux.Handle("/api/budgets", protect(deps.BudgetHandler.HandleBudgets))
	mux.Handle("/api/budgets/{id}", protect(deps.BudgetHandler.HandleBudgetByID))
	mux.Handle("/api/categories", protect(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/savings", protect(deps.SavingsHandler.HandleSavings))
	mux.Handle("/api/savings/{id}", protect(deps.SavingsHandler.HandleSavingsByID))
	mux.Handle("/api/subscriptions", protect(deps.SubscriptionHandler.HandleSubscriptions))
	mux.Handle("/api/subscriptions/{id}", protect(deps.SubscriptionHandler.HandleSubscriptionByID))
	mux.Handle("/api/users/profile", protect(deps.UserHandler.HandleProfile))

	mux.HandleFunc("/", httphandlers.NotFound)

	var handler http.Handler = mux
	handler = middleware.BodyLimit(cfg.Server.BodyLimitBytes)(handler)
	if deps.RateLimiter != nil {
		handler = middleware.RateLimit(deps.RateLimiter)(handler)
	}
	handler = middleware.CORS(cfg.Server.AllowedHosts)(handler)
	handler = middleware.SecurityHeaders(handler)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}
	handler = middleware.Recovery(handler)
	handler = middleware.Logging(log)(handler)

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Info().Msg("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
