// Package carbon estimates per-passenger CO2 for flight legs following a
// simplified ICAO Carbon Emissions Calculator methodology.
//
// Reference: https://www.icao.int/environmental-protection/CarbonOffset/Documents/Methodology%20ICAO%20Carbon%20Calculator_v10-2017.pdf
package carbon

const (
	// CO2PerTonFuel is the tons of CO2 released by burning one ton of jet fuel.
	// Source: ICAO methodology, p.6.
	CO2PerTonFuel = 3.16

	// JetFuelDensityKgPerL is the density of Jet A-1.
	JetFuelDensityKgPerL = 0.804

	// EarthRadiusKm is the mean earth radius used for great-circle distances.
	EarthRadiusKm = 6371.009

	// ShortHaulMaxKm is the largest great-circle distance still classified as short haul.
	ShortHaulMaxKm = 550.0

	// LongHaulMinKm is the smallest great-circle distance classified as long haul.
	LongHaulMinKm = 5500.0

	// Distance corrections for taxi, climb and descent not captured by the great circle.
	// Source: ICAO methodology, p.8.
	ShortHaulCorrectionKm  = 50.0
	MediumHaulCorrectionKm = 100.0
	LongHaulCorrectionKm   = 125.0
)
