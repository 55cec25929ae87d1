package ports

import (
	"context"
	"flight-carbon-service/internal/domain"
)

// Coordinates and country of a resolved place name.
type GeocodeResult struct {
	Coordinates domain.Coordinates
	Country     string
	CountryCode string
}

// Contract for resolving a city name to a location.
type Geocoder interface {
	// Return the best match for city, or an error wrapping domain.ErrCityNotFound.
	Geocode(ctx context.Context, city string) (GeocodeResult, error)
}
