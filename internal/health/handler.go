// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/event_checkin/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	driver string
	logger *zap.SugaredLogger
}

// New creates a new health handler instance. driver names the storage
// backend reported in responses.
func New(db *gorm.DB, driver string, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status          string `json:"status"`
	Driver          string `json:"driver,omitempty"`
	OpenConnections int    `json:"open_connections"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status: "unhealthy",
			Driver: h.driver,
		})
		return
	}

	resp := Response{Status: "ok", Driver: h.driver}
	if stats, err := database.GetStats(h.db); err == nil {
		resp.OpenConnections = stats.OpenConnections
	}

	c.JSON(http.StatusOK, resp)
}
