package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// StorageBackend selects the repository implementation.
type StorageBackend string

const (
	BackendMemory   StorageBackend = "memory"
	BackendPostgres StorageBackend = "postgres"
	BackendSQLite   StorageBackend = "sqlite"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StorageBackend StorageBackend
	DatabaseURL    string
	SQLitePath     string
	EnableDBCheck  bool

	AuthEnabled       bool
	AuthUsername      string
	AuthPasswordHash  string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	LoginRateLimit     string

	FormSessionTTL      time.Duration
	FormSessionCapacity int

	PosthogAPIKey   string
	PosthogEndpoint string

	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_BACKEND", string(BackendMemory))
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "bills.db")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_USERNAME", "admin")
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "bills-app")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "5-M")
	v.SetDefault("FORM_SESSION_TTL", "30m")
	v.SetDefault("FORM_SESSION_CAPACITY", 1024)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		StorageBackend:      StorageBackend(strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND")))),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		AuthEnabled:         v.GetBool("AUTH_ENABLED"),
		AuthUsername:        v.GetString("AUTH_USERNAME"),
		AuthPasswordHash:    v.GetString("AUTH_PASSWORD_HASH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:      v.GetString("RATE_LIMIT"),
		FormSessionCapacity: v.GetInt("FORM_SESSION_CAPACITY"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.FormSessionTTL, err = parseDuration(v, "FORM_SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND=%s", BackendPostgres)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORAGE_BACKEND=%s", BackendSQLite)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.FormSessionCapacity <= 0 {
		return fmt.Errorf("FORM_SESSION_CAPACITY must be positive, got %d", c.FormSessionCapacity)
	}

	if c.AuthEnabled {
		if c.AuthPasswordHash == "" {
			return fmt.Errorf("AUTH_PASSWORD_HASH is required when AUTH_ENABLED=true")
		}
		if c.JWTSecret == defaultJWTSecret {
			if c.IsProduction {
				return fmt.Errorf("JWT_SECRET must be set in production")
			}
			log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		}
	}
	return nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
