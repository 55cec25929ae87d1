package carbon

import (
	"flight-carbon-service/internal/domain"
	"fmt"

	"github.com/golang/geo/s2"
)

// GreatCircleKm returns the great-circle distance between a and b on a
// spherical earth of radius EarthRadiusKm.
func GreatCircleKm(a, b domain.Coordinates) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("great circle: origin: %w", err)
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("great circle: destination: %w", err)
	}

	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm, nil
}
