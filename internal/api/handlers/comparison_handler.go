package handlers

import (
	"context"
	"net/http"

	"github.com/vivasaude/consultaprecos/internal/application/services"
	"github.com/vivasaude/consultaprecos/internal/query"
)

// ComparisonService is the slice of the comparison service the handler needs.
type ComparisonService interface {
	Compare(ctx context.Context, params services.ComparisonParams) (*query.ComparisonPage, error)
	Summary(ctx context.Context, specialty, city string) (string, error)
}

// ComparisonHandler handles price-comparison HTTP requests
type ComparisonHandler struct {
	service ComparisonService
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		service: service,
	}
}

// GetComparison handles GET /api/comparisons
func (h *ComparisonHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.ComparisonParams{
		Specialty:  q.Get("specialty"),
		OriginCity: q.Get("city"),
		State:      q.Get("state"),
		Page:       intParam(q.Get("page"), 1),
		PageSize:   intParam(q.Get("page_size"), 0),
		NearbyOnly: q.Get("nearby") == "true",
	}

	result, err := h.service.Compare(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetComparisonSummary handles GET /api/comparisons/summary
func (h *ComparisonHandler) GetComparisonSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	text, err := h.service.Summary(r.Context(), q.Get("specialty"), q.Get("city"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
