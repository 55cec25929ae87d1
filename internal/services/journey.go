package services

import (
	"context"
	"errors"
	"flight-carbon-service/internal/carbon"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/platform/metrics"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/ports"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Concurrent city lookups per journey.
const resolveLimit = 4

var ErrCityCount = errors.New("journey needs a departure and an arrival with at most one layover")

type JourneyRequest struct {
	Departure string
	Layover   string
	Arrival   string
}

// Cities returns the request as an ordered city list with a "no layover"
// value dropped.
func (r JourneyRequest) Cities() []string {
	if IsNoLayover(r.Layover) {
		return []string{r.Departure, r.Arrival}
	}
	return []string{r.Departure, r.Layover, r.Arrival}
}

// IsNoLayover reports whether s means the journey is direct: empty, "none" or
// "direct", ignoring case and surrounding whitespace.
func IsNoLayover(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "direct":
		return true
	}
	return false
}

// JourneyCalculator resolves city names and runs the leg pipeline for each
// consecutive pair.
type JourneyCalculator struct {
	geocoder  ports.Geocoder
	resolver  ports.ContinentResolver
	estimator carbon.LegEstimator
	metrics   *metrics.Metrics
}

func NewJourneyCalculator(
	geocoder ports.Geocoder,
	resolver ports.ContinentResolver,
	estimator carbon.LegEstimator,
	m *metrics.Metrics,
) *JourneyCalculator {
	return &JourneyCalculator{
		geocoder:  geocoder,
		resolver:  resolver,
		estimator: estimator,
		metrics:   m,
	}
}

func (c *JourneyCalculator) Estimate(ctx context.Context, req JourneyRequest) (*domain.Journey, error) {
	return c.EstimateCities(ctx, req.Cities())
}

// EstimateCities computes a journey over 2 or 3 cities. In a 3-city list a
// "no layover" middle entry is dropped. Any failure aborts the journey and is
// reported as a *domain.StageError.
func (c *JourneyCalculator) EstimateCities(ctx context.Context, cities []string) (_ *domain.Journey, err error) {
	defer obs.Time(ctx, "journey.Estimate")(&err)

	var journey *domain.Journey
	defer func() { c.metrics.ObserveJourney(journey, err) }()

	if len(cities) == 3 && IsNoLayover(cities[1]) {
		cities = []string{cities[0], cities[2]}
	}
	if len(cities) < 2 || len(cities) > 3 {
		return nil, fmt.Errorf("estimate journey: %d cities: %w", len(cities), ErrCityCount)
	}

	names := make([]string, len(cities))
	for i, name := range cities {
		names[i] = strings.TrimSpace(name)
		if names[i] == "" {
			// A blank layover was already dropped above.
			role := "arrival"
			if i == 0 {
				role = "departure"
			}
			return nil, fmt.Errorf("estimate journey: %w", &domain.StageError{
				Stage: domain.StageGeocode,
				Input: role,
				Err:   fmt.Errorf("empty city name: %w", domain.ErrCityNotFound),
			})
		}
	}

	resolved, err := c.resolveCities(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("estimate journey: %w", err)
	}

	legs := make([]domain.Leg, 0, len(names)-1)
	total := 0.0
	for i := 0; i+1 < len(names); i++ {
		leg, err := c.estimator.EstimateLeg(resolved[names[i]], resolved[names[i+1]])
		if err != nil {
			return nil, fmt.Errorf("estimate journey: leg %d: %w", i+1, err)
		}

		zerolog.Ctx(ctx).Debug().
			Str("from", leg.From.Name).
			Str("to", leg.To.Name).
			Float64("distance_km", leg.DistanceKm).
			Str("haul", leg.Haul.String()).
			Float64("co2_kg", leg.CO2Kg).
			Msg("leg estimated")

		legs = append(legs, leg)
		total += leg.CO2Kg
	}

	journey = &domain.Journey{Legs: legs, TotalCO2Kg: total}
	return journey, nil
}

// resolveCities geocodes each distinct name once and classifies its country.
// The returned map is local to one journey.
func (c *JourneyCalculator) resolveCities(ctx context.Context, names []string) (map[string]domain.City, error) {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}

	var batch map[string]ports.GeocodeResult
	if bg, ok := c.geocoder.(ports.BatchGeocoder); ok {
		var err error
		batch, err = bg.GeocodeMany(ctx, distinct)
		if err != nil {
			return nil, geocodeError(strings.Join(distinct, ", "), err)
		}
	}

	cities := make([]domain.City, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)
	for i, name := range distinct {
		g.Go(func() error {
			city, err := c.resolveCity(gctx, name, batch)
			if err != nil {
				return err
			}
			cities[i] = city
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]domain.City, len(distinct))
	for i, name := range distinct {
		out[name] = cities[i]
	}
	return out, nil
}

// geocodeError attributes err to input unless the geocoder already named
// the failing city.
func geocodeError(input string, err error) error {
	var se *domain.StageError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StageError{Stage: domain.StageGeocode, Input: input, Err: err}
}

func (c *JourneyCalculator) resolveCity(
	ctx context.Context,
	name string,
	batch map[string]ports.GeocodeResult,
) (domain.City, error) {
	r, ok := batch[name]
	if !ok {
		var err error
		r, err = c.geocoder.Geocode(ctx, name)
		if err != nil {
			return domain.City{}, geocodeError(name, err)
		}
	}

	country := r.CountryCode
	if country == "" {
		country = r.Country
	}

	cont, err := c.resolver.Continent(ctx, country)
	if err != nil {
		return domain.City{}, &domain.StageError{Stage: domain.StageContinent, Input: country, Err: err}
	}

	return domain.City{
		Name:        name,
		Coordinates: r.Coordinates,
		Country:     r.Country,
		CountryCode: r.CountryCode,
		Continent:   cont,
	}, nil
}
