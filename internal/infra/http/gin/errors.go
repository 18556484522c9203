package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domaindeliverer "motorent/internal/domain/deliverer"
	domainmoto "motorent/internal/domain/moto"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/fault"
)

// respondError maps domain faults and sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 and gets logged.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if fault.IsFault(err) {
		c.JSON(fault.StatusCode(err), gin.H{"error": err.Error()})
		return
	}
	switch {
	case errors.Is(err, domaindeliverer.ErrNotFound),
		errors.Is(err, domainmoto.ErrNotFound),
		errors.Is(err, domainrent.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domaindeliverer.ErrCNHAlreadyUsed),
		errors.Is(err, domaindeliverer.ErrCNPJAlreadyUsed),
		errors.Is(err, domainmoto.ErrPlateAlreadyUsed),
		errors.Is(err, domainmoto.ErrHasRents):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domaindeliverer.ErrInvalidLicenseType),
		errors.Is(err, domaindeliverer.ErrNameRequired),
		errors.Is(err, domaindeliverer.ErrCNPJRequired),
		errors.Is(err, domaindeliverer.ErrCNHRequired),
		errors.Is(err, domaindeliverer.ErrBirthDateRequired),
		errors.Is(err, domainmoto.ErrPlateRequired),
		errors.Is(err, domainmoto.ErrModelRequired),
		errors.Is(err, domainmoto.ErrInvalidYear),
		errors.Is(err, domainrent.ErrInvalidPeriod),
		errors.Is(err, domainrent.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
