package carbon

import (
	"flight-carbon-service/internal/domain"
	"fmt"
	"math"
)

// AircraftProfile describes the representative aircraft assumed for a haul category.
type AircraftProfile struct {
	// Aircraft is the archetype name (e.g., "Airbus A320").
	Aircraft string

	// Cabin describes the seat mix behind EconomySeats.
	Cabin string

	// BurnRateLPer100Km is fuel burned per seat per 100 km, in litres.
	// Source: https://en.wikipedia.org/wiki/Fuel_economy_in_aircraft
	BurnRateLPer100Km float64

	// FuelDensityKgPerL converts litres of fuel to kilograms.
	FuelDensityKgPerL float64

	// ReferenceSeats is the seat count BurnRateLPer100Km was measured for.
	ReferenceSeats float64

	// EconomySeats is the economy-equivalent seat count, with premium cabins
	// weighted as multiple economy seats.
	EconomySeats float64
}

var aircraftProfiles = map[domain.HaulCategory]AircraftProfile{
	domain.ShortHaul: {
		Aircraft:          "CRJ 700",
		Cabin:             "6 first (12 economy equivalent), 64 economy",
		BurnRateLPer100Km: 4.40,
		FuelDensityKgPerL: JetFuelDensityKgPerL,
		ReferenceSeats:    70,
		EconomySeats:      76,
	},
	domain.MediumHaul: {
		Aircraft:          "Airbus A320",
		Cabin:             "12 first (18 economy equivalent), 138 economy",
		BurnRateLPer100Km: 2.61,
		FuelDensityKgPerL: JetFuelDensityKgPerL,
		ReferenceSeats:    150,
		EconomySeats:      156,
	},
	domain.LongHaul: {
		Aircraft:          "Boeing 777-300ER",
		Cabin:             "60 business (300 economy equivalent), 24 premium (35), 266 economy",
		BurnRateLPer100Km: 3.11,
		FuelDensityKgPerL: JetFuelDensityKgPerL,
		ReferenceSeats:    344,
		EconomySeats:      601,
	},
}

// ProfileFor returns the aircraft profile for a haul category.
func ProfileFor(h domain.HaulCategory) (AircraftProfile, bool) {
	p, ok := aircraftProfiles[h]
	return p, ok
}

// FuelTons returns the total fuel the profile's aircraft burns over adjustedKm, in tons.
func (p AircraftProfile) FuelTons(adjustedKm float64) float64 {
	kgPerSeatKm := p.BurnRateLPer100Km * p.FuelDensityKgPerL / 100
	kgPerKm := kgPerSeatKm * p.ReferenceSeats
	return kgPerKm * adjustedKm / 1000
}

// FuelBurn applies the aircraft fuel model for a haul category.
// It returns the fuel burned in tons and the economy-equivalent seat count.
func FuelBurn(h domain.HaulCategory, adjustedKm float64) (float64, float64, error) {
	p, ok := ProfileFor(h)
	if !ok {
		return 0, 0, fmt.Errorf("fuel burn: no aircraft profile for %v", h)
	}
	if math.IsNaN(adjustedKm) || adjustedKm < 0 {
		return 0, 0, fmt.Errorf("fuel burn: adjusted distance must be non-negative, got %v", adjustedKm)
	}

	return p.FuelTons(adjustedKm), p.EconomySeats, nil
}
