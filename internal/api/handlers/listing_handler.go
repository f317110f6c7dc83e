package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vivasaude/consultaprecos/internal/application/services"
	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query"
	"github.com/vivasaude/consultaprecos/internal/query/pricing"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

// ListingService is the slice of the listing service the handler needs.
type ListingService interface {
	Search(ctx context.Context, params services.SearchParams) (*services.SearchResult, error)
	Create(ctx context.Context, input *entities.ListingInput) (*entities.Listing, error)
	Update(ctx context.Context, id string, input *entities.ListingInput) (*entities.Listing, error)
	Delete(ctx context.Context, id string) error
}

// ListingHandler handles listing-related HTTP requests
type ListingHandler struct {
	service ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service ListingService) *ListingHandler {
	return &ListingHandler{
		service: service,
	}
}

// SearchListings handles GET /api/listings
func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.SearchParams{
		Criteria: query.Criteria{
			City:         q.Get("city"),
			NameOrClinic: q.Get("q"),
			Specialty:    q.Get("specialty"),
			MinPrice:     pricing.Amount(q.Get("min_price")),
			MaxPrice:     pricing.Amount(q.Get("max_price")),
		},
		Sort:     query.ParseSortMode(q.Get("sort")),
		Page:     intParam(q.Get("page"), 1),
		PageSize: intParam(q.Get("page_size"), 0),
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// CreateListing handles POST /api/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var input entities.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.service.Create(r.Context(), &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, listing)
}

// UpdateListing handles PUT /api/listings/{id}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	var input entities.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, listing)
}

// DeleteListing handles DELETE /api/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "listing ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses. The
// unavailable case is deliberately 503, not 200 with an empty list: a client
// must be able to tell "no data yet" from "no results".
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeUnavailable:
		respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusBadGateway, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
