package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/domain/providers"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/observability"
	"github.com/vivasaude/consultaprecos/internal/query"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

// ComparisonService computes per-city cheapest-price comparisons over the
// current snapshot. By default every city in the data set competes; with
// NearbyOnly the field is restricted to cities the geolocation provider
// reports as close to the origin.
type ComparisonService struct {
	store           *query.SnapshotStore
	geo             providers.GeolocationProvider
	metrics         *observability.Metrics
	defaultPageSize int
}

// NewComparisonService creates a new comparison service
func NewComparisonService(store *query.SnapshotStore, geo providers.GeolocationProvider, metrics *observability.Metrics, defaultPageSize int) *ComparisonService {
	return &ComparisonService{
		store:           store,
		geo:             geo,
		metrics:         metrics,
		defaultPageSize: defaultPageSize,
	}
}

// ComparisonParams holds a comparison request. State is only used for the
// nearby-city lookup; the comparison itself matches cities by name.
type ComparisonParams struct {
	Specialty  string
	OriginCity string
	State      string
	Page       int
	PageSize   int
	NearbyOnly bool
}

// Compare returns one page of per-city winners for the given specialty.
// Returns an unavailable error until the first successful refresh. A failing
// nearby-city lookup fails the request rather than silently widening the
// comparison back to every city.
func (s *ComparisonService) Compare(ctx context.Context, params ComparisonParams) (*query.ComparisonPage, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, apperrors.NewUnavailableError("listing data has not been loaded yet")
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	listings := snap.Listings
	if params.NearbyOnly {
		restricted, err := s.restrictToNearby(ctx, snap.Listings, params.OriginCity, params.State)
		if err != nil {
			return nil, err
		}
		listings = restricted
	}

	if s.metrics != nil {
		s.metrics.ComparisonCount.Add(ctx, 1)
	}

	return query.CompareAcrossCities(listings, params.Specialty, params.OriginCity, page, pageSize), nil
}

// Summary renders the copy-friendly text summary for a specialty in a single
// city.
func (s *ComparisonService) Summary(ctx context.Context, specialty, city string) (string, error) {
	snap, ok := s.store.Current()
	if !ok {
		return "", apperrors.NewUnavailableError("listing data has not been loaded yet")
	}
	if strings.TrimSpace(specialty) == "" {
		return "", apperrors.NewValidationError("specialty is required")
	}
	if strings.TrimSpace(city) == "" {
		return "", apperrors.NewValidationError("city is required")
	}
	return query.ComparisonSummary(snap.Listings, specialty, city), nil
}

// restrictToNearby keeps origin-city listings plus listings in cities the
// geolocation provider reports nearby. The origin city always stays in the
// field even when the provider omits it.
func (s *ComparisonService) restrictToNearby(ctx context.Context, listings []*entities.Listing, originCity, state string) ([]*entities.Listing, error) {
	origin := strings.TrimSpace(originCity)
	if origin == "" {
		return nil, apperrors.NewValidationError("origin city is required for a nearby comparison")
	}
	if s.geo == nil {
		return nil, apperrors.NewValidationError("nearby comparison is not available")
	}

	names, err := s.geo.NearbyCityNames(ctx, origin, state)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to look up nearby cities", err)
	}

	allowed := make(map[string]struct{})
	for _, name := range query.NormalizeCityNames(names, origin) {
		allowed[name] = struct{}{}
	}
	log.Debug().Str("origin", origin).Int("nearby_cities", len(allowed)).Msg("restricting comparison to nearby cities")

	originLower := strings.ToLower(origin)
	out := make([]*entities.Listing, 0, len(listings))
	for _, l := range listings {
		city := strings.ToLower(strings.TrimSpace(l.City))
		if city == originLower {
			out = append(out, l)
			continue
		}
		if _, ok := allowed[city]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
