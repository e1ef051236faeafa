package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/api/docs"
	"github.com/solacetech/solace-backend/internal/api/middleware"
	plansapi "github.com/solacetech/solace-backend/internal/api/plans"
	sessionapi "github.com/solacetech/solace-backend/internal/api/session"
	supportapi "github.com/solacetech/solace-backend/internal/api/support"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	sessionHandler *sessionapi.Handler,
	plansHandler *plansapi.Handler,
	supportHandler *supportapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(120 * time.Second)) // LLM calls are slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	sessionapi.RegisterRoutes(r, sessionHandler)
	plansapi.RegisterRoutes(r, plansHandler)
	supportapi.RegisterRoutes(r, supportHandler)

	return r
}
