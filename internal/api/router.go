package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stock-analyzer/backend/internal/api/handlers"
	custommiddleware "github.com/stock-analyzer/backend/internal/api/middleware"
	"github.com/stock-analyzer/backend/internal/config"
	"github.com/stock-analyzer/backend/internal/service"
	"github.com/stock-analyzer/backend/internal/twelvedata"
)

// NewRouter creates and configures the HTTP router
func NewRouter(stockClient twelvedata.Client, snapTradeService *service.SnapTradeService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler()
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(stockClient)
			r.Get("/search", stockHandler.Search)
			r.Get("/quote/{symbol}", stockHandler.Quote)
			r.Get("/details/{symbol}", stockHandler.Details)
			r.Post("/quotes", stockHandler.Quotes)
			r.Get("/historical/{symbol}", stockHandler.Historical)
		})

		r.Route("/snaptrade", func(r chi.Router) {
			snapTradeHandler := handlers.NewSnapTradeHandler(snapTradeService, cfg.Frontend.URL)

			// Brokerage discovery and the OAuth callback need no caller identity.
			r.Get("/brokerages", snapTradeHandler.Brokerages)
			r.Get("/callback", snapTradeHandler.Callback)

			// Everything else operates on the caller's own provider user.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.NewIdentity(cfg.Auth.DefaultUserID))
				r.Post("/user", snapTradeHandler.CreateUser)
				r.Post("/connect/initiate", snapTradeHandler.InitiateConnection)
				r.Get("/portfolio", snapTradeHandler.Portfolio)
				r.Get("/accounts", snapTradeHandler.Accounts)
				r.Get("/accounts/{accountId}/holdings", snapTradeHandler.Holdings)
			})
		})
	})

	return r
}
