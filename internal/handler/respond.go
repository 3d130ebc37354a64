package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"estatesite/internal/logger"
	"estatesite/internal/service"
	"estatesite/internal/validation"
)

// fail maps a service error to a status and a message safe to show to the
// dashboard. Unexpected errors are logged and replaced with fallback.
func fail(c *gin.Context, log *slog.Logger, err error, fallback string) {
	if ve, ok := validation.AsErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve})
		return
	}
	switch {
	case errors.Is(err, service.ErrImagesRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
	default:
		_ = c.Error(err)
		log.Error(fallback, logger.Err(err), slog.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		return "Property not found"
	case errors.Is(err, service.ErrServiceNotFound):
		return "Service not found"
	default:
		return "Contact not found"
	}
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}
