// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"finledger/internal/api/handler"
	"finledger/internal/api/middleware"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Wallet      *handler.WalletHandler
	Category    *handler.CategoryHandler
	Transaction *handler.TransactionHandler
	Transfer    *handler.TransferHandler
	Stats       *handler.StatsHandler
	Onboarding  *handler.OnboardingHandler
}

// NewRouter sets up and returns a new HTTP router. Everything under /api
// requires a verified bearer token; /health is public.
func NewRouter(h Handlers, verifier middleware.TokenVerifier, trustedOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   trustedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", h.Wallet.List)
			r.Post("/", h.Wallet.Create)
			r.Patch("/reorder", h.Wallet.Reorder)
			r.Get("/{walletID}", h.Wallet.Get)
			r.Patch("/{walletID}", h.Wallet.Update)
			r.Delete("/{walletID}", h.Wallet.Delete)
			r.Get("/{walletID}/balance/recompute", h.Wallet.RecomputeBalance)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.List)
			r.Post("/", h.Category.Create)
			r.Patch("/{categoryID}", h.Category.Update)
			r.Delete("/{categoryID}", h.Category.Delete)
		})

		r.Route("/transaction", func(r chi.Router) {
			r.Get("/", h.Transaction.List)
			r.Post("/", h.Transaction.Create)
			r.Get("/recent", h.Transaction.Recent)
			r.Get("/{transactionID}", h.Transaction.Get)
			r.Put("/{transactionID}", h.Transaction.Update)
			r.Delete("/{transactionID}", h.Transaction.Delete)
		})

		r.Route("/transfer", func(r chi.Router) {
			r.Get("/", h.Transfer.List)
			r.Post("/", h.Transfer.Create)
			r.Get("/{transferID}", h.Transfer.Get)
			r.Delete("/{transferID}", h.Transfer.Delete)
		})

		r.Get("/dashboard", h.Stats.Dashboard)
		r.Get("/statistics/monthly", h.Stats.Monthly)
		r.Get("/statistics/category", h.Stats.ByCategory)

		r.Post("/onboarding", h.Onboarding.Setup)
	})

	return r
}
