package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports whether the database and the session store answer
type HealthHandler struct {
	database HealthCheck
	sessions HealthCheck
	timeout  time.Duration
}

// NewHealthHandler creates a health handler. A nil check counts as healthy.
func NewHealthHandler(database, sessions HealthCheck) *HealthHandler {
	return &HealthHandler{database: database, sessions: sessions, timeout: 2 * time.Second}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "healthy",
		Database: h.probe(ctx, "database", h.database),
		Sessions: h.probe(ctx, "sessions", h.sessions),
	}
	status := http.StatusOK
	if resp.Database != "up" || resp.Sessions != "up" {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) probe(ctx context.Context, name string, check HealthCheck) string {
	if check == nil {
		return "up"
	}
	if err := check(ctx); err != nil {
		logger.L(ctx).Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		return "down"
	}
	return "up"
}
