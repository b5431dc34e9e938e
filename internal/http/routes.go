package http

import (
	"github.com/gin-gonic/gin"

	"arcade_server/internal/config"
	"arcade_server/internal/http/handlers"
	"arcade_server/internal/http/middleware"
	"arcade_server/internal/room"
	"arcade_server/internal/ws"
)

// RegisterRoutes wires the coordinator's HTTP surface: websocket gateway,
// health probes and the ops API.
func RegisterRoutes(r *gin.Engine, registry *room.Registry, hub *ws.Hub, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(registry, hub, version)
	roomsHandler := handlers.NewRoomsHandler(registry)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rl := middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	v1 := r.Group("/api/v1")
	v1.Use(rl)
	v1.GET("/rooms", roomsHandler.List)

	// WebSocket gateway for game sessions
	r.GET("/ws", rl, ws.HandleWS(hub, cfg.AllowedOrigin))
}
