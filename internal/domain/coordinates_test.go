package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Coordinates
		wantErr bool
	}{
		{"origin", Coordinates{}, false},
		{"north pole", Coordinates{Lat: 90, Lon: 0}, false},
		{"date line", Coordinates{Lat: -45, Lon: -180}, false},
		{"latitude too large", Coordinates{Lat: 90.0001}, true},
		{"latitude too small", Coordinates{Lat: -95}, true},
		{"longitude too large", Coordinates{Lon: 181}, true},
		{"NaN longitude", Coordinates{Lon: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoordinates)
				return
			}
			assert.NoError(t, err)
		})
	}
}
