package carbon

import (
	"flight-carbon-service/internal/domain"
	"fmt"
	"math"
)

// PassengerCO2Kg applies the ICAO per-passenger formula (methodology p.6):
//
//	CO2/pax = 3.16 * (fuel * ptff) / (seats * plf)
//
// fuelTons is the total fuel burned by the aircraft, seats its economy-equivalent
// capacity, plf the passenger load factor and ptff the pax-to-freight factor.
// The result is in kilograms.
func PassengerCO2Kg(fuelTons, seats, plf, ptff float64) (float64, error) {
	if !(seats > 0) || !(plf > 0) {
		return 0, fmt.Errorf("passenger co2: seats=%v load_factor=%v: %w", seats, plf, domain.ErrDegenerateLoadFactor)
	}
	if math.IsNaN(fuelTons) || fuelTons < 0 {
		return 0, fmt.Errorf("passenger co2: fuel must be non-negative, got %v", fuelTons)
	}
	if math.IsNaN(ptff) || ptff < 0 {
		return 0, fmt.Errorf("passenger co2: pax-to-freight factor must be non-negative, got %v", ptff)
	}

	tons := CO2PerTonFuel * (fuelTons * ptff) / (seats * plf)
	kg := tons * 1000
	if math.IsInf(kg, 0) {
		return 0, fmt.Errorf("passenger co2: result overflows: %w", domain.ErrDegenerateLoadFactor)
	}
	return kg, nil
}
