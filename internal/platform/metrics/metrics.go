// Package metrics exposes Prometheus collectors for journey estimates and
// geocoding. A nil *Metrics is valid and records nothing.
package metrics

import (
	"flight-carbon-service/internal/domain"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flight_carbon"

type Metrics struct {
	journeys       *prometheus.CounterVec
	legs           *prometheus.CounterVec
	journeyCO2     prometheus.Histogram
	geocodeCalls   *prometheus.CounterVec
	geocodeLatency prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		journeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journeys_total",
			Help:      "Journey estimates by result.",
		}, []string{"result"}),
		legs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legs_total",
			Help:      "Estimated flight legs by haul category.",
		}, []string{"haul"}),
		journeyCO2: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "journey_co2_kg",
			Help:      "Per-passenger CO2 of estimated journeys.",
			Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2000, 4000},
		}),
		geocodeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "City lookups by outcome (cache_hit, fetched, not_found, error).",
		}, []string{"outcome"}),
		geocodeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_request_seconds",
			Help:      "Latency of upstream geocoding requests.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.journeys, m.legs, m.journeyCO2, m.geocodeCalls, m.geocodeLatency)
	return m
}

// ObserveJourney records the outcome of one journey estimate.
func (m *Metrics) ObserveJourney(j *domain.Journey, err error) {
	if m == nil {
		return
	}
	if err != nil || j == nil {
		m.journeys.WithLabelValues("error").Inc()
		return
	}
	m.journeys.WithLabelValues("ok").Inc()
	m.journeyCO2.Observe(j.TotalCO2Kg)
	for _, l := range j.Legs {
		m.legs.WithLabelValues(l.Haul.String()).Inc()
	}
}

// ObserveGeocode counts n lookups with the given outcome.
func (m *Metrics) ObserveGeocode(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.geocodeCalls.WithLabelValues(outcome).Add(float64(n))
}

// ObserveGeocodeLatency records one upstream request.
func (m *Metrics) ObserveGeocodeLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.geocodeLatency.Observe(d.Seconds())
}
