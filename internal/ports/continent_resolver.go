package ports

import (
	"context"
	"flight-carbon-service/internal/domain"
)

// Contract for classifying a country into one of the six load factor continents.
type ContinentResolver interface {
	// Accept a country name or ISO 3166-1 alpha-2 code. Unrecognized countries
	// return an error wrapping domain.ErrUnknownContinent.
	Continent(ctx context.Context, country string) (domain.Continent, error)
}
