package ports

import "context"

// Optional extension of Geocoder that resolves several names in one call.
type BatchGeocoder interface {
	Geocoder
	// Return results keyed by the names as given. A name that cannot be resolved fails the call.
	GeocodeMany(ctx context.Context, cities []string) (map[string]GeocodeResult, error)
}
