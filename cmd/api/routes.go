package main

import (
	"net/http"

	httphandlers "devfinance/internal/interfaces/http"
	"devfinance/internal/shared/config"
	"devfinance/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", httphandlers.HandleRoot)
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/auth/profile", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleProfile)))
	mux.Handle("/api/categories", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleListCategories)))
	mux.Handle("/api/categories/income", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleListIncome)))
	mux.Handle("/api/categories/expense", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleListExpense)))
	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/transactions/summary", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleSummary)))
	mux.Handle("/api/transactions/{id}", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.CORS.AllowedOrigin)(mux))
	if cfg.Telemetry.Enabled {
		handler = middleware.Tracing(handler)
	}

	return handler
}
