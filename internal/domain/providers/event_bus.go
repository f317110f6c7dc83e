package providers

import (
	"context"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

// EventChannelListingUpdates carries every listing mutation event.
const EventChannelListingUpdates = "listings:updates"

// EventBus defines the interface for publishing and subscribing to listing
// mutation events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ListingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ListingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}
