package entities

import "time"

// ListingEventType identifies the kind of listing mutation
type ListingEventType string

const (
	ListingEventCreated ListingEventType = "listing.created"
	ListingEventUpdated ListingEventType = "listing.updated"
	ListingEventDeleted ListingEventType = "listing.deleted"
)

// ListingEvent is published after every successful mutation. Subscribers use
// it as an invalidation signal; the payload intentionally carries no listing
// fields because any consumer must re-fetch the full snapshot anyway.
type ListingEvent struct {
	ID         string           `json:"id"`
	ListingID  string           `json:"listing_id"`
	Type       ListingEventType `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`
}
