package providers

import "context"

// GeolocationProvider resolves a city to the names of geographically nearby
// cities. It is only a location lookup: no weather or map data leaks past
// this interface.
type GeolocationProvider interface {
	// NearbyCityNames returns the names of cities close to the given city.
	// The raw provider response may repeat names with different casing and
	// may include the origin city itself; callers normalize before use.
	NearbyCityNames(ctx context.Context, city, state string) ([]string, error)
}
