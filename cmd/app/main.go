package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arcade_server/internal/config"
	"arcade_server/internal/game"
	httpServer "arcade_server/internal/http"
	"arcade_server/internal/http/middleware"
	"arcade_server/internal/logger"
	"arcade_server/internal/room"
	"arcade_server/internal/ws"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	registry := room.NewRegistry(nil, game.NewFactory(), room.Options{
		TTL:           cfg.RoomTTL,
		EmptyGrace:    cfg.DisconnectGrace,
		FlipBackDelay: cfg.FlipBackDelay,
	})
	hub := ws.NewHub(registry, cfg.DisconnectGrace)
	registry.SetSender(hub)
	registry.StartReaper(cfg.ReapInterval)
	defer registry.Close()

	r := gin.Default()

	// CORS for production (frontend on a different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, registry, hub, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
