package handlers

import (
	"context"
	"encoding/json"
	"flight-carbon-service/internal/api/dto"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/services"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type JourneyEstimator interface {
	Estimate(ctx context.Context, req services.JourneyRequest) (*domain.Journey, error)
}

type JourneyHandler struct {
	Estimator JourneyEstimator
}

// Create estimates the journey described by a JSON body.
func (h *JourneyHandler) Create(c *gin.Context) {
	var req dto.JourneyRequest

	dec := json.NewDecoder(c.Request.Body)
	defer c.Request.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(c, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	h.estimate(c, services.JourneyRequest{
		Departure: req.Departure,
		Layover:   req.Layover,
		Arrival:   req.Arrival,
	})
}

// Get estimates the journey given as from, via and to query parameters.
func (h *JourneyHandler) Get(c *gin.Context) {
	h.estimate(c, services.JourneyRequest{
		Departure: c.Query("from"),
		Layover:   c.Query("via"),
		Arrival:   c.Query("to"),
	})
}

func (h *JourneyHandler) estimate(c *gin.Context, req services.JourneyRequest) {
	if strings.TrimSpace(req.Departure) == "" || strings.TrimSpace(req.Arrival) == "" {
		writeError(c, http.StatusBadRequest, "departure and arrival are required")
		return
	}

	j, err := h.Estimator.Estimate(c.Request.Context(), req)
	if err != nil {
		writeJourneyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJourneyResponse(j))
}
