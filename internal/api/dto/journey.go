package dto

import "flight-carbon-service/internal/domain"

type JourneyRequest struct {
	Departure string `json:"departure"`
	Layover   string `json:"layover"`
	Arrival   string `json:"arrival"`
}

type LegResponse struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	FromCountry        string  `json:"from_country"`
	ToCountry          string  `json:"to_country"`
	FromContinent      string  `json:"from_continent"`
	ToContinent        string  `json:"to_continent"`
	DistanceKm         float64 `json:"distance_km"`
	AdjustedDistanceKm float64 `json:"adjusted_distance_km"`
	Haul               string  `json:"haul"`
	Aircraft           string  `json:"aircraft"`
	FuelTons           float64 `json:"fuel_tons"`
	Seats              float64 `json:"seats"`
	LoadFactor         float64 `json:"load_factor"`
	PaxToFreight       float64 `json:"pax_to_freight"`
	CO2Kg              float64 `json:"co2_kg"`
}

type JourneyResponse struct {
	Legs       []LegResponse `json:"legs"`
	TotalCO2Kg float64       `json:"total_co2_kg"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Input string `json:"input,omitempty"`
}

func NewJourneyResponse(j *domain.Journey) JourneyResponse {
	res := JourneyResponse{
		Legs:       make([]LegResponse, 0, len(j.Legs)),
		TotalCO2Kg: j.TotalCO2Kg,
	}
	for _, l := range j.Legs {
		res.Legs = append(res.Legs, LegResponse{
			From:               l.From.Name,
			To:                 l.To.Name,
			FromCountry:        l.From.Country,
			ToCountry:          l.To.Country,
			FromContinent:      l.From.Continent.String(),
			ToContinent:        l.To.Continent.String(),
			DistanceKm:         l.DistanceKm,
			AdjustedDistanceKm: l.AdjustedDistanceKm,
			Haul:               l.Haul.String(),
			Aircraft:           l.Aircraft,
			FuelTons:           l.FuelTons,
			Seats:              l.Seats,
			LoadFactor:         l.LoadFactor,
			PaxToFreight:       l.PaxToFreight,
			CO2Kg:              l.CO2Kg,
		})
	}
	return res
}
