package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "DB_HOST", "PROXIMITY_RADIUS_KM", "TOKEN_TTL_HOURS",
		"CATALOG_CACHE_TTL_SECONDS", "LOG_LEVEL", "KAFKA_HOST", "REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.InDelta(t, 2.0, cfg.ProximityRadiusKm, 1e-9)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.KafkaHost)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROXIMITY_RADIUS_KM", "3.5")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_DB", "4")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.InDelta(t, 3.5, cfg.ProximityRadiusKm, 1e-9)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 4, cfg.RedisDB)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROXIMITY_RADIUS_KM", "-1")
	t.Setenv("TOKEN_TTL_HOURS", "soon")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg := LoadConfig()

	assert.InDelta(t, 2.0, cfg.ProximityRadiusKm, 1e-9)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestConfig_Postgres(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5433", DBUser: "farma", DBPassword: "secret", DBName: "fd", DBSslMode: "require"}

	assert.Equal(t, "postgres://farma:secret@db:5433/fd?sslmode=require", cfg.Postgres().DSN())
}
