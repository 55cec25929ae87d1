package carbon

import (
	"errors"
	"flight-carbon-service/internal/domain"
)

// LegEstimator computes the per-passenger emissions of a single flight leg.
type LegEstimator interface {
	EstimateLeg(from, to domain.City) (domain.Leg, error)
}

// Calculator implements LegEstimator with the ICAO pipeline:
//  1. great-circle distance between the two cities
//  2. haul classification and distance correction
//  3. aircraft fuel model for the haul category
//  4. continent-pair load factor lookup
//  5. per-passenger CO2
type Calculator struct {
	table *LoadFactorTable
}

// NewCalculator creates a Calculator reading coefficients from table.
func NewCalculator(table *LoadFactorTable) *Calculator {
	return &Calculator{table: table}
}

// EstimateLeg runs the pipeline for the flight from -> to. Failures are
// returned as *domain.StageError naming the failing stage and input.
func (c *Calculator) EstimateLeg(from, to domain.City) (domain.Leg, error) {
	route := from.Name + " -> " + to.Name

	dist, err := GreatCircleKm(from.Coordinates, to.Coordinates)
	if err != nil {
		return domain.Leg{}, &domain.StageError{Stage: domain.StageDistance, Input: route, Err: err}
	}

	adjusted, haul := ClassifyHaul(dist)

	profile, ok := ProfileFor(haul)
	if !ok {
		return domain.Leg{}, &domain.StageError{
			Stage: domain.StageFuel,
			Input: haul.String(),
			Err:   errors.New("no aircraft profile"),
		}
	}
	fuel, seats := profile.FuelTons(adjusted), profile.EconomySeats

	lf, err := c.table.Lookup(from.Continent, to.Continent)
	if err != nil {
		return domain.Leg{}, &domain.StageError{
			Stage: domain.StageLoadFactor,
			Input: from.Continent.String() + " -> " + to.Continent.String(),
			Err:   err,
		}
	}

	co2, err := PassengerCO2Kg(fuel, seats, lf.Passenger, lf.PaxToFreight)
	if err != nil {
		return domain.Leg{}, &domain.StageError{Stage: domain.StageEmission, Input: route, Err: err}
	}

	return domain.Leg{
		From:               from,
		To:                 to,
		DistanceKm:         dist,
		AdjustedDistanceKm: adjusted,
		Haul:               haul,
		Aircraft:           profile.Aircraft,
		FuelTons:           fuel,
		Seats:              seats,
		LoadFactor:         lf.Passenger,
		PaxToFreight:       lf.PaxToFreight,
		CO2Kg:              co2,
	}, nil
}
