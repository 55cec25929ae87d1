package api

import (
	"flight-carbon-service/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies.
// Handlers stay unaware of concrete adapters.
func NewRouter(logger zerolog.Logger, estimator handlers.JourneyEstimator, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(logger), accessLog())

	journeys := &handlers.JourneyHandler{Estimator: estimator}

	r.GET("/health", handlers.Health)
	r.POST("/v1/journeys", journeys.Create)
	r.GET("/v1/journeys", journeys.Get)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
