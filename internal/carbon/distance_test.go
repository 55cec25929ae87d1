package carbon

import (
	"flight-carbon-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	london    = domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	paris     = domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	newYork   = domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	singapore = domain.Coordinates{Lat: 1.3521, Lon: 103.8198}
	sydney    = domain.Coordinates{Lat: -33.8688, Lon: 151.2093}
	tokyo     = domain.Coordinates{Lat: 35.6762, Lon: 139.6503}
)

func TestGreatCircleKm_KnownRoutes(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinates
		want float64
	}{
		{"London-Paris", london, paris, 343.557},
		{"London-New York", london, newYork, 5570.230},
		{"London-Singapore", london, singapore, 10847.860},
		{"Sydney-Tokyo", sydney, tokyo, 7825.830},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GreatCircleKm(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestGreatCircleKm_SymmetricAndZero(t *testing.T) {
	ab, err := GreatCircleKm(london, tokyo)
	require.NoError(t, err)
	ba, err := GreatCircleKm(tokyo, london)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)

	same, err := GreatCircleKm(paris, paris)
	require.NoError(t, err)
	assert.Equal(t, 0.0, same)
}

func TestGreatCircleKm_Antipodal(t *testing.T) {
	got, err := GreatCircleKm(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 180})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*EarthRadiusKm, got, 1e-6)
}

func TestGreatCircleKm_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinates
	}{
		{"latitude above 90", domain.Coordinates{Lat: 90.5, Lon: 0}, paris},
		{"latitude below -90", paris, domain.Coordinates{Lat: -91, Lon: 0}},
		{"longitude above 180", domain.Coordinates{Lat: 0, Lon: 180.01}, paris},
		{"longitude below -180", paris, domain.Coordinates{Lat: 0, Lon: -200}},
		{"NaN latitude", domain.Coordinates{Lat: math.NaN(), Lon: 0}, paris},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GreatCircleKm(tt.a, tt.b)
			assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
		})
	}
}
