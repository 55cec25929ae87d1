package metrics

import (
	"errors"
	"flight-carbon-service/internal/domain"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveJourney(t *testing.T) {
	m := New(prometheus.NewRegistry())

	j := &domain.Journey{
		Legs: []domain.Leg{
			{Haul: domain.ShortHaul, CO2Kg: 40},
			{Haul: domain.LongHaul, CO2Kg: 400},
		},
		TotalCO2Kg: 440,
	}
	m.ObserveJourney(j, nil)
	m.ObserveJourney(nil, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.journeys.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.journeys.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.legs.WithLabelValues("Short Haul")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.legs.WithLabelValues("Long Haul")))
}

func TestMetrics_ObserveGeocode(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGeocode("cache_hit", 2)
	m.ObserveGeocode("cache_hit", 0)
	m.ObserveGeocodeLatency(150 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.geocodeCalls.WithLabelValues("cache_hit")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveJourney(&domain.Journey{}, nil)
		m.ObserveGeocode("fetched", 1)
		m.ObserveGeocodeLatency(time.Second)
	})
}
