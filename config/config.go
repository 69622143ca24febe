// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// DefaultJWTSecret is the development fallback signing secret. Validation
// refuses to start production with it.
const DefaultJWTSecret = "dev-secret"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string

	// Storage configuration
	StorageBackend string
	SQLitePath     string
	PostgresDSN    string
	MongoURI       string
	MongoDB        string

	// JWT configuration
	JWTSecret string

	// Optional Redis-backed rate limiting; disabled when empty
	RedisAddr     string
	RedisPassword string

	AllowedOrigins []string
}

// Load creates a Config from environment variables, applying development
// defaults where none are set.
func Load() (*Config, error) {
	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	cfg := &Config{
		ServerPort:     getEnv("PORT", "5000"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "recipes.db"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getEnv("MONGO_DB", "recipebox"),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: origins,
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
