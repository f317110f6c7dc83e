package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/domain/providers"
	"github.com/vivasaude/consultaprecos/internal/domain/repositories"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/observability"
)

// snapshotCacheKey caches the whole FetchAll result. There is deliberately
// no per-listing key: listings are only ever consumed as a full snapshot,
// and every mutation purges the key so a stale snapshot is never served as
// current.
const snapshotCacheKey = "listings:snapshot"

// CachedListingAdapter wraps a ListingRepository with snapshot caching
type CachedListingAdapter struct {
	adapter repositories.ListingRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
	ttl     int // seconds
}

// NewCachedListingAdapter creates a new cached listing adapter
func NewCachedListingAdapter(adapter repositories.ListingRepository, cache providers.CacheProvider, metrics *observability.Metrics, ttlSeconds int) repositories.ListingRepository {
	return &CachedListingAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
		ttl:     ttlSeconds,
	}
}

// FetchAll returns the cached snapshot when present, falling back to the
// underlying repository.
func (a *CachedListingAdapter) FetchAll(ctx context.Context) ([]*entities.Listing, error) {
	if cached, err := a.cache.Get(ctx, snapshotCacheKey); err == nil {
		var listings []*entities.Listing
		if err := json.Unmarshal(cached, &listings); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, snapshotCacheKey)
			return listings, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached snapshot, refetching")
	}
	observability.RecordCacheMiss(ctx, a.metrics, snapshotCacheKey)

	listings, err := a.adapter.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listings); err == nil {
		if err := a.cache.Set(ctx, snapshotCacheKey, data, a.ttl); err != nil {
			log.Warn().Err(err).Msg("failed to cache snapshot")
		}
	}
	return listings, nil
}

// Create creates a listing and invalidates the cached snapshot
func (a *CachedListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	if err := a.adapter.Create(ctx, listing); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// Update updates a listing and invalidates the cached snapshot
func (a *CachedListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	if err := a.adapter.Update(ctx, listing); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// Delete deletes a listing and invalidates the cached snapshot
func (a *CachedListingAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

func (a *CachedListingAdapter) invalidate(ctx context.Context) {
	if err := a.cache.Delete(ctx, snapshotCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate snapshot cache")
	}
}
