package routes

import (
	"net/http"

	"github.com/vivasaude/consultaprecos/internal/api/handlers"
	"github.com/vivasaude/consultaprecos/internal/api/middleware"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	listingHandler    *handlers.ListingHandler
	comparisonHandler *handlers.ComparisonHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	listingHandler *handlers.ListingHandler,
	comparisonHandler *handlers.ComparisonHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		listingHandler:    listingHandler,
		comparisonHandler: comparisonHandler,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Listing endpoints
	r.mux.HandleFunc("GET /api/listings", r.listingHandler.SearchListings)
	r.mux.HandleFunc("POST /api/listings", r.listingHandler.CreateListing)
	r.mux.HandleFunc("PUT /api/listings/{id}", r.listingHandler.UpdateListing)
	r.mux.HandleFunc("DELETE /api/listings/{id}", r.listingHandler.DeleteListing)

	// Comparison endpoints
	r.mux.HandleFunc("GET /api/comparisons", r.comparisonHandler.GetComparison)
	r.mux.HandleFunc("GET /api/comparisons/summary", r.comparisonHandler.GetComparisonSummary)

	// Apply middleware chain
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	return handler
}
