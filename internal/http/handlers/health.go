package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"arcade_server/internal/room"
	"arcade_server/internal/ws"
)

// HealthHandler reports coordinator liveness and load.
type HealthHandler struct {
	registry  *room.Registry
	hub       *ws.Hub
	startTime time.Time
	version   string
}

func NewHealthHandler(registry *room.Registry, hub *ws.Hub, version string) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		hub:       hub,
		startTime: time.Now(),
		version:   version,
	}
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version,omitempty"`
	Uptime    string         `json:"uptime,omitempty"`
	Timestamp string         `json:"timestamp"`
	Checks    map[string]any `json:"checks,omitempty"`
}

// Liveness returns simple alive status (for k8s liveness probe)
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness returns detailed status (for k8s readiness probe). The
// coordinator has no external dependencies, so this is load reporting
// rather than dependency checking.
func (h *HealthHandler) Readiness(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks: map[string]any{
			"rooms":           h.registry.Len(),
			"connections":     h.hub.ConnCount(),
			"goroutines":      runtime.NumGoroutine(),
			"memory_alloc_mb": float64(m.Alloc) / 1024 / 1024,
		},
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}
