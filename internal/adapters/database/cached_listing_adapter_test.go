package database_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasaude/consultaprecos/internal/adapters/database"
	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.data[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

type fakeListingRepo struct {
	listings   []*entities.Listing
	fetchCalls int
}

func (r *fakeListingRepo) FetchAll(ctx context.Context) ([]*entities.Listing, error) {
	r.fetchCalls++
	return r.listings, nil
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entities.Listing) error {
	r.listings = append(r.listings, listing)
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entities.Listing) error {
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestCachedListingAdapter_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the snapshot after the first fetch", func(t *testing.T) {
		repo := &fakeListingRepo{listings: []*entities.Listing{
			{ID: "l1", ClinicName: "Clínica Vida"},
			{ID: "l2", ClinicName: "Bem Estar"},
		}}
		cache := newFakeCache()
		adapter := database.NewCachedListingAdapter(repo, cache, nil, 60)

		first, err := adapter.FetchAll(ctx)
		require.NoError(t, err)
		second, err := adapter.FetchAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.fetchCalls)
		assert.Len(t, first, 2)
		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("falls back to the repository on corrupt cache entries", func(t *testing.T) {
		repo := &fakeListingRepo{listings: []*entities.Listing{{ID: "l1", ClinicName: "Clínica Vida"}}}
		cache := newFakeCache()
		cache.data["listings:snapshot"] = []byte("{not json")
		adapter := database.NewCachedListingAdapter(repo, cache, nil, 60)

		listings, err := adapter.FetchAll(ctx)
		require.NoError(t, err)
		assert.Len(t, listings, 1)
		assert.Equal(t, 1, repo.fetchCalls)
	})
}

func TestCachedListingAdapter_MutationsInvalidate(t *testing.T) {
	ctx := context.Background()

	newAdapter := func(t *testing.T) (*fakeListingRepo, *fakeCache, *database.CachedListingAdapter) {
		t.Helper()
		repo := &fakeListingRepo{listings: []*entities.Listing{{ID: "l1", ClinicName: "Clínica Vida"}}}
		cache := newFakeCache()
		adapter := database.NewCachedListingAdapter(repo, cache, nil, 60).(*database.CachedListingAdapter)

		_, err := adapter.FetchAll(ctx)
		require.NoError(t, err)
		require.Contains(t, cache.data, "listings:snapshot")
		return repo, cache, adapter
	}

	t.Run("create purges the snapshot", func(t *testing.T) {
		repo, cache, adapter := newAdapter(t)

		err := adapter.Create(ctx, &entities.Listing{ID: "l2", ClinicName: "Bem Estar"})
		require.NoError(t, err)
		assert.NotContains(t, cache.data, "listings:snapshot")

		listings, err := adapter.FetchAll(ctx)
		require.NoError(t, err)
		assert.Len(t, listings, 2)
		assert.Equal(t, 2, repo.fetchCalls)
	})

	t.Run("update purges the snapshot", func(t *testing.T) {
		_, cache, adapter := newAdapter(t)

		err := adapter.Update(ctx, &entities.Listing{ID: "l1", ClinicName: "Clínica Vida Renovada"})
		require.NoError(t, err)
		assert.NotContains(t, cache.data, "listings:snapshot")
	})

	t.Run("delete purges the snapshot", func(t *testing.T) {
		_, cache, adapter := newAdapter(t)

		err := adapter.Delete(ctx, "l1")
		require.NoError(t, err)
		assert.NotContains(t, cache.data, "listings:snapshot")
	})
}

func TestCachedListingAdapter_NilPricesSurviveCache(t *testing.T) {
	ctx := context.Background()
	price := 120.0
	repo := &fakeListingRepo{listings: []*entities.Listing{
		{ID: "l1", ClinicName: "Clínica Vida", PriceDiscounted: &price},
		{ID: "l2", ClinicName: "Bem Estar"},
	}}
	cache := newFakeCache()
	adapter := database.NewCachedListingAdapter(repo, cache, nil, 60)

	_, err := adapter.FetchAll(ctx)
	require.NoError(t, err)

	var cached []*entities.Listing
	require.NoError(t, json.Unmarshal(cache.data["listings:snapshot"], &cached))

	fromCache, err := adapter.FetchAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, fromCache[0].PriceDiscounted)
	assert.Equal(t, 120.0, *fromCache[0].PriceDiscounted)
	assert.Nil(t, fromCache[1].PriceDiscounted)
}
