package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/domain/providers"
	"github.com/vivasaude/consultaprecos/internal/domain/repositories"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/observability"
	"github.com/vivasaude/consultaprecos/internal/query"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

// searchWindowRadius matches the pager of the search results page.
const searchWindowRadius = 1

// ListingService handles business logic for listings. All reads are served
// from the in-memory snapshot; every successful mutation triggers a full
// refresh so the snapshot never lags behind a write made through this
// service.
type ListingService struct {
	repo            repositories.ListingRepository
	events          providers.EventBus
	store           *query.SnapshotStore
	metrics         *observability.Metrics
	defaultPageSize int
}

// NewListingService creates a new listing service
func NewListingService(repo repositories.ListingRepository, events providers.EventBus, store *query.SnapshotStore, metrics *observability.Metrics, defaultPageSize int) *ListingService {
	return &ListingService{
		repo:            repo,
		events:          events,
		store:           store,
		metrics:         metrics,
		defaultPageSize: defaultPageSize,
	}
}

// Refresh fetches the full listing set and installs it as the current
// snapshot. Concurrent refreshes are safe: a refresh that finishes after a
// newer one is discarded.
func (s *ListingService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()

	listings, err := s.repo.FetchAll(ctx)
	if err != nil {
		return err
	}

	if !s.store.Commit(gen, listings) {
		log.Debug().Uint64("generation", gen).Msg("snapshot refresh superseded by a newer one")
		return nil
	}

	if s.metrics != nil {
		s.metrics.SnapshotRefresh.Add(ctx, 1)
	}
	log.Info().Uint64("generation", gen).Int("listings", len(listings)).Msg("snapshot refreshed")
	return nil
}

// SearchParams holds the search request: filters, ordering and the page to
// return. A PageSize of zero falls back to the service default.
type SearchParams struct {
	Criteria query.Criteria
	Sort     query.SortMode
	Page     int
	PageSize int
}

// SearchResult is one page of filtered, sorted listings.
type SearchResult struct {
	Listings  []*entities.Listing     `json:"listings"`
	Total     int                     `json:"total"`
	Page      int                     `json:"page"`
	PageSize  int                     `json:"page_size"`
	PageCount int                     `json:"page_count"`
	Window    []query.PageWindowEntry `json:"window"`
	FetchedAt time.Time               `json:"fetched_at"`
}

// Search filters, sorts and paginates the current snapshot. The requested
// page is clamped into range, so shrinking data cannot strand a client on a
// page past the end. Returns an unavailable error until the first successful
// refresh.
func (s *ListingService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	snap, ok := s.store.Current()
	if !ok {
		return nil, apperrors.NewUnavailableError("listing data has not been loaded yet")
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	filtered := query.Filter(snap.Listings, params.Criteria)
	sorted := query.Sort(filtered, params.Sort)

	pageCount := query.PageCount(len(sorted), pageSize)
	page := params.Page
	if page < 1 {
		page = 1
	}
	if pageCount > 0 && page > pageCount {
		page = pageCount
	}

	if s.metrics != nil {
		s.metrics.SearchCount.Add(ctx, 1)
	}

	return &SearchResult{
		Listings:  query.Paginate(sorted, page, pageSize),
		Total:     len(sorted),
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
		Window:    query.BuildPageWindow(len(sorted), page, pageSize, searchWindowRadius),
		FetchedAt: snap.FetchedAt,
	}, nil
}

// Create validates and persists a new listing, then refreshes the snapshot.
// The refresh is part of the operation: a stale snapshot after a confirmed
// write would contradict what the caller just saw succeed.
func (s *ListingService) Create(ctx context.Context, input *entities.ListingInput) (*entities.Listing, error) {
	listing, err := input.Normalize()
	if err != nil {
		return nil, err
	}
	listing.ID = uuid.New().String()

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, entities.ListingEventCreated, listing.ID)

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update validates and persists changes to an existing listing, then
// refreshes the snapshot.
func (s *ListingService) Update(ctx context.Context, id string, input *entities.ListingInput) (*entities.Listing, error) {
	listing, err := input.Normalize()
	if err != nil {
		return nil, err
	}
	listing.ID = id

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, entities.ListingEventUpdated, id)

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes a listing, then refreshes the snapshot.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, entities.ListingEventDeleted, id)

	return s.Refresh(ctx)
}

func (s *ListingService) publish(ctx context.Context, eventType entities.ListingEventType, listingID string) {
	if s.events == nil {
		return
	}
	event := &entities.ListingEvent{
		ID:         uuid.New().String(),
		ListingID:  listingID,
		Type:       eventType,
		OccurredAt: time.Now(),
	}
	if err := s.events.Publish(ctx, providers.EventChannelListingUpdates, event); err != nil {
		log.Warn().Err(err).Str("listing_id", listingID).Str("event", string(eventType)).Msg("failed to publish listing event")
	}
}
