package cmd

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"farmadelivery/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

// Config holds the process settings read from the environment. Optional
// collaborators are enabled by setting their address.
type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string
	NotificationBufferSize int
	RedeliverySchedule     string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	GeocoderURL          string
	GeocoderUserAgent    string
	GeocoderCountryCodes string

	JWTSecret string
	TokenTTL  time.Duration

	ProximityRadiusKm float64
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn(".env not loaded", "error", err)
	}

	return Config{
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),
		LogLevel: getLevelEnv("LOG_LEVEL", slog.LevelInfo),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", ""),
		DBName:     getEnvOrDefault("DB_NAME", "farmadelivery"),
		DBSslMode:  getEnvOrDefault("DB_SSLMODE", "disable"),

		KafkaHost:              getEnvOrDefault("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: getEnvOrDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed"),
		NotificationBufferSize: getIntEnv("NOTIFICATION_BUFFER_SIZE", 1024),
		RedeliverySchedule:     getEnvOrDefault("NOTIFICATION_REDELIVERY_SCHEDULE", ""),

		RedisAddr:       getEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:         getIntEnv("REDIS_DB", 0),
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL_SECONDS", 300, time.Second),

		GeocoderURL:          getEnvOrDefault("GEOCODER_URL", ""),
		GeocoderUserAgent:    getEnvOrDefault("GEOCODER_USER_AGENT", "farmadelivery/1.0"),
		GeocoderCountryCodes: getEnvOrDefault("GEOCODER_COUNTRY_CODES", "ar"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour),

		ProximityRadiusKm: getFloatEnv("PROXIMITY_RADIUS_KM", 2),
	}
}

// Postgres returns the connection settings of the database.
func (c Config) Postgres() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getLevelEnv(key string, defaultValue slog.Level) slog.Level {
	var level slog.Level
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
