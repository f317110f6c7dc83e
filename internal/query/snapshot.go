package query

import (
	"sync"
	"time"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

// Snapshot is one full, immutable fetch of the listing data set. It is
// replaced wholesale on refresh and never patched in place, because listing
// identifiers are not stable across external mutations.
type Snapshot struct {
	Listings   []*entities.Listing
	Generation uint64
	FetchedAt  time.Time
}

// SnapshotStore holds the current snapshot and serializes its replacement.
// Refreshes race: a fetch begun earlier may finish after a newer one. Each
// refresh reserves a generation up front with Begin and commits with it, so
// a stale result is discarded instead of overwriting fresher data.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *Snapshot
	nextGen uint64
}

// NewSnapshotStore creates an empty store. Current reports ok=false until
// the first successful Commit, which is how "data unavailable" stays
// distinguishable from "no results".
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Begin reserves a generation for a refresh that is about to start.
func (s *SnapshotStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Commit installs the fetched listings under the reserved generation. It
// returns false, leaving the store untouched, when a newer refresh already
// committed.
func (s *SnapshotStore) Commit(gen uint64, listings []*entities.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Generation >= gen {
		return false
	}
	s.current = &Snapshot{
		Listings:   listings,
		Generation: gen,
		FetchedAt:  time.Now(),
	}
	return true
}

// Current returns the latest snapshot. ok is false when no refresh has ever
// succeeded.
func (s *SnapshotStore) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}
