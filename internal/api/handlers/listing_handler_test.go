package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasaude/consultaprecos/internal/api/handlers"
	"github.com/vivasaude/consultaprecos/internal/application/services"
	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

type stubListingService struct {
	lastSearch services.SearchParams
	result     *services.SearchResult
	created    []*entities.ListingInput
	updatedIDs []string
	deletedIDs []string
	err        error
}

func (s *stubListingService) Search(ctx context.Context, params services.SearchParams) (*services.SearchResult, error) {
	s.lastSearch = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubListingService) Create(ctx context.Context, input *entities.ListingInput) (*entities.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, input)
	return &entities.Listing{ID: "new-id", ClinicName: strings.TrimSpace(input.ClinicName)}, nil
}

func (s *stubListingService) Update(ctx context.Context, id string, input *entities.ListingInput) (*entities.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updatedIDs = append(s.updatedIDs, id)
	return &entities.Listing{ID: id, ClinicName: strings.TrimSpace(input.ClinicName)}, nil
}

func (s *stubListingService) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func TestListingHandler_SearchListings(t *testing.T) {
	t.Run("parses query parameters including comma decimals", func(t *testing.T) {
		service := &stubListingService{result: &services.SearchResult{Listings: []*entities.Listing{}}}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("GET", "/api/listings?city=Orleans&q=vida&specialty=cardio&min_price=50%2C50&max_price=200&sort=price_asc&page=2&page_size=5", nil)
		w := httptest.NewRecorder()

		handler.SearchListings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Orleans", service.lastSearch.Criteria.City)
		assert.Equal(t, "vida", service.lastSearch.Criteria.NameOrClinic)
		assert.Equal(t, "cardio", service.lastSearch.Criteria.Specialty)
		assert.Equal(t, 50.5, service.lastSearch.Criteria.MinPrice)
		assert.Equal(t, 200.0, service.lastSearch.Criteria.MaxPrice)
		assert.Equal(t, query.SortPriceAsc, service.lastSearch.Sort)
		assert.Equal(t, 2, service.lastSearch.Page)
		assert.Equal(t, 5, service.lastSearch.PageSize)
	})

	t.Run("defaults apply when parameters are absent", func(t *testing.T) {
		service := &stubListingService{result: &services.SearchResult{}}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("GET", "/api/listings", nil)
		w := httptest.NewRecorder()

		handler.SearchListings(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, service.lastSearch.Page)
		assert.Equal(t, 0, service.lastSearch.PageSize)
		assert.Equal(t, query.SortDefault, service.lastSearch.Sort)
		assert.Equal(t, 0.0, service.lastSearch.Criteria.MaxPrice)
	})

	t.Run("snapshot never loaded maps to 503", func(t *testing.T) {
		service := &stubListingService{err: apperrors.NewUnavailableError("listing data has not been loaded yet")}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("GET", "/api/listings", nil)
		w := httptest.NewRecorder()

		handler.SearchListings(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestListingHandler_CreateListing(t *testing.T) {
	t.Run("creates a listing", func(t *testing.T) {
		service := &stubListingService{}
		handler := handlers.NewListingHandler(service)

		body := `{"clinic_name":"Clínica Vida","doctor_name":"Dra. Ana","price_discounted":"120,00"}`
		req := httptest.NewRequest("POST", "/api/listings", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateListing(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, service.created, 1)
		assert.Equal(t, "120,00", service.created[0].PriceDiscounted)

		var response entities.Listing
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "new-id", response.ID)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		handler := handlers.NewListingHandler(&stubListingService{})

		req := httptest.NewRequest("POST", "/api/listings", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreateListing(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		service := &stubListingService{err: apperrors.NewValidationError("clinic name is required")}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("POST", "/api/listings", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		handler.CreateListing(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "clinic name is required", response["error"])
	})
}

func TestListingHandler_UpdateListing(t *testing.T) {
	t.Run("updates by path id", func(t *testing.T) {
		service := &stubListingService{}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("PUT", "/api/listings/l1", strings.NewReader(`{"clinic_name":"Clínica Vida"}`))
		req.SetPathValue("id", "l1")
		w := httptest.NewRecorder()

		handler.UpdateListing(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"l1"}, service.updatedIDs)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		service := &stubListingService{err: apperrors.NewNotFoundError("listing with id l9 not found")}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("PUT", "/api/listings/l9", strings.NewReader(`{"clinic_name":"X"}`))
		req.SetPathValue("id", "l9")
		w := httptest.NewRecorder()

		handler.UpdateListing(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListingHandler_DeleteListing(t *testing.T) {
	t.Run("deletes by path id", func(t *testing.T) {
		service := &stubListingService{}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("DELETE", "/api/listings/l1", nil)
		req.SetPathValue("id", "l1")
		w := httptest.NewRecorder()

		handler.DeleteListing(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"l1"}, service.deletedIDs)
	})

	t.Run("database failure maps to 502", func(t *testing.T) {
		service := &stubListingService{err: apperrors.NewExternalError("failed to delete listing", nil)}
		handler := handlers.NewListingHandler(service)

		req := httptest.NewRequest("DELETE", "/api/listings/l1", nil)
		req.SetPathValue("id", "l1")
		w := httptest.NewRecorder()

		handler.DeleteListing(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
