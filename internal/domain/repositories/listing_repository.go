package repositories

import (
	"context"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

// ListingRepository defines the interface for the external listing store.
// FetchAll returns the full current data set; there is no partial read
// because row identifiers are not stable across mutations, so consumers must
// re-fetch everything after any write.
type ListingRepository interface {
	FetchAll(ctx context.Context) ([]*entities.Listing, error)
	Create(ctx context.Context, listing *entities.Listing) error
	Update(ctx context.Context, listing *entities.Listing) error
	Delete(ctx context.Context, id string) error
}
