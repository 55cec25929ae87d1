package handlers

import (
	"context"
	"errors"
	"flight-carbon-service/internal/api/dto"
	"flight-carbon-service/internal/domain"
	"flight-carbon-service/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

// writeJourneyError maps a journey failure onto a status code. Input errors
// are 4xx; broken reference data is 500.
func writeJourneyError(c *gin.Context, err error) {
	res := dto.ErrorResponse{Error: err.Error()}

	var se *domain.StageError
	if errors.As(err, &se) {
		res.Stage = string(se.Stage)
		res.Input = se.Input
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, services.ErrCityCount):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCityNotFound), errors.Is(err, domain.ErrUnknownContinent):
		status = http.StatusUnprocessableEntity
	}

	logger := zerolog.Ctx(c.Request.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("journey estimate failed")
		res.Error = "internal server error"
	} else {
		logger.Info().Err(err).Int("status", status).Msg("journey estimate rejected")
	}

	c.AbortWithStatusJSON(status, res)
}
