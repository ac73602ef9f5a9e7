// Package config loads runtime settings from the environment, with an
// optional .env file layered underneath.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const minJWTSecretLength = 32

var insecureJWTSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
	"your-secret-key":                            {},
}

type Config struct {
	Port     string
	Location *time.Location

	DBDriver    string // sqlite|postgres
	DBPath      string
	DatabaseURL string

	JWTSecret string

	LogLevel  string // debug|info|warn|error
	LogPretty bool

	CORSAllowedOrigins string
	MetricsEnabled     bool
	DefaultCycleLimit  int
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads .env when present, then the process environment, and validates
// the result. Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		Location:           loadLocation(getenv("TZ", "UTC")),
		DBDriver:           strings.ToLower(strings.TrimSpace(getenv("DB_DRIVER", "sqlite"))),
		DBPath:             getenv("DB_PATH", "data/cyclekeeper.db"),
		DatabaseURL:        strings.TrimSpace(getenv("DATABASE_URL", "")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		LogLevel:           strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogPretty:          getbool("LOG_PRETTY", false),
		CORSAllowedOrigins: strings.Join(splitCSV(getenv("CORS_ALLOWED_ORIGINS", "*")), ","),
		MetricsEnabled:     getbool("METRICS_ENABLED", true),
		DefaultCycleLimit:  getint("DEFAULT_CYCLE_LIMIT", 12),
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	if cfg.CORSAllowedOrigins == "" {
		cfg.CORSAllowedOrigins = "*"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	port, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || port < 1 || port > 65535 {
		return cfg, errors.New("PORT must be a number between 1 and 65535")
	}
	switch cfg.DBDriver {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if err := validateJWTSecret(cfg.JWTSecret); err != nil {
		return cfg, err
	}
	if cfg.DefaultCycleLimit < 1 {
		return cfg, errors.New("DEFAULT_CYCLE_LIMIT must be >= 1")
	}

	return cfg, nil
}

func validateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if _, insecure := insecureJWTSecrets[strings.ToLower(secret)]; insecure {
		return errors.New("JWT_SECRET uses an insecure placeholder value")
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	return nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC
	}
	return location
}

func getenv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getint(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
