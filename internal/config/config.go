package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const minJWTSecretLength = 16

type Config struct {
	Port        string `envconfig:"PORT" default:"4000"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// Embedded so the full variable names below are used verbatim.
	GitHubConfig
	SyncConfig
}

// Load reads the configuration from the process environment. It does not
// validate server-only settings; call Validate for that.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
// GitHub settings are intentionally not checked here: a missing account only
// disables project sync.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	return nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// AllowedOrigins splits CORS_ORIGINS into its entries.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
