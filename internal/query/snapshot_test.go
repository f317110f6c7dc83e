package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query"
)

func TestSnapshotStore_EmptyUntilFirstCommit(t *testing.T) {
	store := query.NewSnapshotStore()

	_, ok := store.Current()
	assert.False(t, ok, "never-loaded must be distinguishable from empty")

	gen := store.Begin()
	require.True(t, store.Commit(gen, []*entities.Listing{}))

	snap, ok := store.Current()
	require.True(t, ok)
	assert.Empty(t, snap.Listings, "a successful fetch of zero rows is a real snapshot")
}

func TestSnapshotStore_ReplacesWholesale(t *testing.T) {
	store := query.NewSnapshotStore()

	gen := store.Begin()
	require.True(t, store.Commit(gen, []*entities.Listing{{ID: "a"}}))

	gen = store.Begin()
	require.True(t, store.Commit(gen, []*entities.Listing{{ID: "b"}, {ID: "c"}}))

	snap, _ := store.Current()
	require.Len(t, snap.Listings, 2)
	assert.Equal(t, "b", snap.Listings[0].ID)
}

func TestSnapshotStore_SupersededRefreshIsDiscarded(t *testing.T) {
	store := query.NewSnapshotStore()

	slow := store.Begin()
	fast := store.Begin()

	// the newer refresh finishes first
	require.True(t, store.Commit(fast, []*entities.Listing{{ID: "fresh"}}))

	// the older one must not clobber it
	assert.False(t, store.Commit(slow, []*entities.Listing{{ID: "stale"}}))

	snap, ok := store.Current()
	require.True(t, ok)
	require.Len(t, snap.Listings, 1)
	assert.Equal(t, "fresh", snap.Listings[0].ID)
}
