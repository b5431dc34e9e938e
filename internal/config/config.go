package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AllowedOrigin string
	LogLevel      string
	LogJSON       bool

	// Room lifecycle
	RoomTTL         time.Duration // idle rooms older than this are reaped
	ReapInterval    time.Duration
	DisconnectGrace time.Duration // how long a dropped peer may reconnect before forfeiting
	FlipBackDelay   time.Duration // memory-match flip-back window

	// Rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:       port,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:      logLevel,
		LogJSON:       os.Getenv("LOG_JSON") == "true",

		RoomTTL:         envDuration("ROOM_TTL_SECONDS", time.Hour),
		ReapInterval:    envDuration("REAP_INTERVAL_SECONDS", 10*time.Minute),
		DisconnectGrace: envDuration("DISCONNECT_GRACE_SECONDS", 5*time.Second),
		FlipBackDelay:   envDuration("FLIP_BACK_DELAY_MS", 1500*time.Millisecond),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		APIRateLimit:  envInt("API_RATE_LIMIT", 60),
		APIRateWindow: envDuration("API_RATE_WINDOW_SECONDS", time.Minute),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// envDuration parses an env var as a count whose unit is encoded in the
// key suffix (_SECONDS or _MS)
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	if len(key) > 3 && key[len(key)-3:] == "_MS" {
		return time.Duration(n) * time.Millisecond
	}
	return time.Duration(n) * time.Second
}
