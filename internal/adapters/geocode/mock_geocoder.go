package geocode

import (
	"context"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/ports"
	"fmt"
	"sync"
)

type MockPlace struct {
	Name        string
	Lat, Lon    float64
	Country     string
	CountryCode string
}

// MockGeocoder resolves names from a fixed table and counts lookups.
type MockGeocoder struct {
	m map[string]ports.GeocodeResult

	mu    sync.Mutex
	calls map[string]int
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	m := make(map[string]ports.GeocodeResult, len(places))
	for _, p := range places {
		m[normalize(p.Name)] = ports.GeocodeResult{
			Coordinates: domain.Coordinates{Lat: p.Lat, Lon: p.Lon},
			Country:     p.Country,
			CountryCode: p.CountryCode,
		}
	}
	return &MockGeocoder{m: m, calls: map[string]int{}}
}

func (g *MockGeocoder) Geocode(ctx context.Context, city string) (ports.GeocodeResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.GeocodeResult{}, err
	}

	k := normalize(city)

	g.mu.Lock()
	g.calls[k]++
	g.mu.Unlock()

	r, ok := g.m[k]
	if !ok {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", city, domain.ErrCityNotFound)
	}
	return r, nil
}

// Calls reports how many times city was looked up.
func (g *MockGeocoder) Calls(city string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[normalize(city)]
}

// TotalCalls reports the number of lookups across all names.
func (g *MockGeocoder) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, n := range g.calls {
		total += n
	}
	return total
}
