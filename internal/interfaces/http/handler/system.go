package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	startedAt time.Time
	pingDB    func() error
}

// NewSystemHandler creates a new SystemHandler. pingDB may be nil when
// the service runs without a database.
func NewSystemHandler(pingDB func() error) *SystemHandler {
	return &SystemHandler{
		startedAt: time.Now(),
		pingDB:    pingDB,
	}
}

// RegisterRoutes registers system routes directly on the engine so they
// sit outside the versioned API prefix
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", h.Health)
	engine.GET("/readyz", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Ready reports whether dependencies are reachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.pingDB != nil {
		if err := h.pingDB(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
