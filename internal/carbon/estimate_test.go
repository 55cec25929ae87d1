package carbon

import (
	"errors"
	"flight-carbon-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	table, err := DefaultLoadFactorTable()
	require.NoError(t, err)
	return NewCalculator(table)
}

func TestCalculator_EstimateLeg(t *testing.T) {
	c := newTestCalculator(t)

	from := domain.City{Name: "London", Coordinates: london, Country: "United Kingdom", Continent: domain.Europe}
	to := domain.City{Name: "New York", Coordinates: newYork, Country: "United States", Continent: domain.NorthAmerica}

	leg, err := c.EstimateLeg(from, to)
	require.NoError(t, err)

	assert.InDelta(t, 5570.230, leg.DistanceKm, 0.01)
	assert.Equal(t, domain.LongHaul, leg.Haul)
	assert.Equal(t, leg.DistanceKm+LongHaulCorrectionKm, leg.AdjustedDistanceKm)
	assert.Equal(t, "Boeing 777-300ER", leg.Aircraft)
	assert.Equal(t, 601.0, leg.Seats)
	assert.Equal(t, 0.822, leg.LoadFactor)
	assert.Equal(t, 0.854, leg.PaxToFreight)

	wantFuel, _, err := FuelBurn(domain.LongHaul, leg.AdjustedDistanceKm)
	require.NoError(t, err)
	assert.Equal(t, wantFuel, leg.FuelTons)

	wantCO2, err := PassengerCO2Kg(wantFuel, 601, 0.822, 0.854)
	require.NoError(t, err)
	assert.Equal(t, wantCO2, leg.CO2Kg)
	assert.Greater(t, leg.CO2Kg, 0.0)
}

func TestCalculator_EstimateLeg_StageErrors(t *testing.T) {
	c := newTestCalculator(t)

	valid := domain.City{Name: "Paris", Coordinates: paris, Continent: domain.Europe}

	tests := []struct {
		name      string
		from, to  domain.City
		wantStage domain.Stage
		wantErr   error
	}{
		{
			name:      "invalid coordinates",
			from:      domain.City{Name: "Nowhere", Coordinates: domain.Coordinates{Lat: 120}, Continent: domain.Europe},
			to:        valid,
			wantStage: domain.StageDistance,
			wantErr:   domain.ErrInvalidCoordinates,
		},
		{
			name:      "unknown continent",
			from:      valid,
			to:        domain.City{Name: "McMurdo", Coordinates: domain.Coordinates{Lat: -77.8, Lon: 166.7}},
			wantStage: domain.StageLoadFactor,
			wantErr:   domain.ErrUnknownContinentPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.EstimateLeg(tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var se *domain.StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantStage, se.Stage)
		})
	}
}

func TestCalculator_EstimateLeg_UsesHaulProfile(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name     string
		from, to domain.Coordinates
		want     domain.HaulCategory
	}{
		{name: "short haul", from: london, to: paris, want: domain.ShortHaul},
		{name: "long haul", from: london, to: newYork, want: domain.LongHaul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg, err := c.EstimateLeg(
				domain.City{Name: "A", Coordinates: tt.from, Continent: domain.Europe},
				domain.City{Name: "B", Coordinates: tt.to, Continent: domain.NorthAmerica},
			)
			require.NoError(t, err)
			require.Equal(t, tt.want, leg.Haul)

			profile, ok := ProfileFor(leg.Haul)
			require.True(t, ok)
			assert.Equal(t, profile.Aircraft, leg.Aircraft)
			assert.Equal(t, profile.EconomySeats, leg.Seats)
			assert.Equal(t, profile.FuelTons(leg.AdjustedDistanceKm), leg.FuelTons)
		})
	}
}
