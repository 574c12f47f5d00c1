package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coffeeshop/pkg/api"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler constructs HealthHandler; uptime is measured from now.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now(), now: time.Now}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()
	c.JSON(http.StatusOK, api.Health{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
	})
}
