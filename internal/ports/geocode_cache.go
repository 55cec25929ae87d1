package ports

import "context"

// Persistent store of geocode results keyed by normalized city name.
type GeocodeCache interface {
	// Fetch cached results; names without an entry are absent from the map.
	GetMany(ctx context.Context, names []string) (map[string]GeocodeResult, error)
	// Store results, replacing existing entries.
	PutMany(ctx context.Context, results map[string]GeocodeResult) error
}
