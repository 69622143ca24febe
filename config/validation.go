package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration against the current environment. The
// development JWT fallback and the sqlite default exist so a bare checkout
// runs; production must configure both explicitly.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.StorageBackend {
	case BackendSQLite, BackendPostgres, BackendMongo:
	default:
		errs = append(errs, ValidationError{
			Field:   "STORAGE_BACKEND",
			Message: fmt.Sprintf("unknown backend %q (want sqlite, postgres, or mongo)", cfg.StorageBackend),
		}.Error())
	}

	if cfg.StorageBackend == BackendPostgres && cfg.PostgresDSN == "" {
		errs = append(errs, ValidationError{
			Field:   "POSTGRES_DSN",
			Message: "required when STORAGE_BACKEND=postgres",
		}.Error())
	}

	if IsProduction() {
		if cfg.JWTSecret == DefaultJWTSecret {
			errs = append(errs, ValidationError{
				Field:   "JWT_SECRET",
				Message: "the built-in development secret must not be used in production",
			}.Error())
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{
				Field:   "JWT_SECRET",
				Message: "required in production",
			}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
