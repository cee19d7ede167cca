package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

// writeError maps domain sentinels to status codes; anything else is a 500 whose
// detail is logged, not returned.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCountryNotFound),
		errors.Is(err, domain.ErrRegulatorMissing),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNodeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidTheme),
		errors.Is(err, domain.ErrInvalidCanvas):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoSources),
		errors.Is(err, domain.ErrInvalidDataset):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("request_id", c.GetString("request_id")).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
