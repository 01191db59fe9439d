package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/service/inventory"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
)

// fail translates service errors to HTTP. The body mirrors the backend's
// error shape so the frontend handles both the same way.
func fail(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, backend.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, backend.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, backend.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrSessionClosed):
		status = http.StatusConflict
	case errors.Is(err, backend.ErrNetwork):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(status, gin.H{"detail": apiErr.Detail})
		return
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return id, true
}
