package carbon

import "flight-carbon-service/internal/domain"

// ClassifyHaul maps a great-circle distance to its haul category and returns the
// distance corrected for taxi, climb and descent.
//
//	distance <= 550 km         short haul,  +50 km
//	550 km < distance < 5500   medium haul, +100 km
//	distance >= 5500 km        long haul,   +125 km
func ClassifyHaul(distanceKm float64) (float64, domain.HaulCategory) {
	switch {
	case distanceKm <= ShortHaulMaxKm:
		return distanceKm + ShortHaulCorrectionKm, domain.ShortHaul
	case distanceKm < LongHaulMinKm:
		return distanceKm + MediumHaulCorrectionKm, domain.MediumHaul
	default:
		return distanceKm + LongHaulCorrectionKm, domain.LongHaul
	}
}
