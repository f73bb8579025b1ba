package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/service/reporting"
	"github.com/mamadbah2/tco/internal/service/scenarios"
	"github.com/mamadbah2/tco/pkg/tco"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	switch {
	case errors.Is(err, tco.ErrInvalidInput):
		logger.Debug(msg, zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, scenarios.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
	case errors.Is(err, reporting.ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondBindError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Debug("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
