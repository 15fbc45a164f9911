package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is the fallback signing secret used when JWT_SECRET is not
// set. Running with it is unsafe outside local development; main logs a loud
// warning when it is in effect.
const DefaultJWTSecret = "astroseva_secret"

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	JWTSecret          string
	TokenExpiration    int64 // Bearer token lifetime in seconds
	AllowedOrigins     []string
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDB            int64
	AuthRateLimit      int64 // Max auth attempts per window, per client IP
	AuthRateWindow     int64 // Window size in seconds
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                    // Default development
		LogLevel:           getLogLevel(),                                       // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),                  // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                     // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),              // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "astroseva_user"),         // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "astroseva_password"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "astroseva_db"),       // Default database name
		JWTSecret:          getEnv("JWT_SECRET", DefaultJWTSecret),              // Fallback secret, see DefaultJWTSecret
		TokenExpiration:    getEnvAsInt64("TOKEN_EXPIRATION", 86400),            // Default 24 hours
		AllowedOrigins:     getAllowedOrigins(),                                 // Default localhost frontend
		RedisHost:          getEnv("REDIS_HOST", "redis"),                       // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),                   // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),                        // Default empty
		RedisDB:            getEnvAsInt64("REDIS_DATABASE", 0),                  // Default 0
		AuthRateLimit:      getEnvAsInt64("AUTH_RATE_LIMIT", 10),                // Default 10 attempts
		AuthRateWindow:     getEnvAsInt64("AUTH_RATE_WINDOW", 60),               // Default 1 minute
	}
}

// UsingFallbackSecret reports whether the process is signing tokens with the
// hardcoded default secret.
func (c *Config) UsingFallbackSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getAllowedOrigins() []string {
	raw := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
