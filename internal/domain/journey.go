package domain

// Represents one flight between two consecutive cities of a journey.
// Every numeric field is derived from the two cities and the reference data;
// a Leg is never modified once computed.
type Leg struct {
	From City
	To   City

	DistanceKm         float64
	AdjustedDistanceKm float64
	Haul               HaulCategory
	Aircraft           string

	FuelTons     float64
	Seats        float64
	LoadFactor   float64
	PaxToFreight float64

	CO2Kg float64
}

// Represents the per-passenger footprint of a whole journey.
// Legs are in travel order and TotalCO2Kg is their sum.
type Journey struct {
	Legs       []Leg
	TotalCO2Kg float64
}

// Cities returns the waypoints of the journey in travel order.
func (j *Journey) Cities() []City {
	if len(j.Legs) == 0 {
		return nil
	}
	out := make([]City, 0, len(j.Legs)+1)
	out = append(out, j.Legs[0].From)
	for _, l := range j.Legs {
		out = append(out, l.To)
	}
	return out
}
