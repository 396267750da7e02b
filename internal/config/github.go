package config

import (
	"fmt"
	"strings"
	"time"
)

const DefaultGitHubTimeout = 30 * time.Second

// Duration is a time.Duration that treats a blank value as unset
type Duration time.Duration

// Decode implements envconfig.Decoder
func (d *Duration) Decode(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

// GitHubConfig holds GitHub-specific configuration
type GitHubConfig struct {
	// Username is the account whose repositories are imported.
	Username string `envconfig:"GITHUB_USERNAME"`
	// Token is optional; without it requests are anonymous and see public repos only.
	Token      string   `envconfig:"GITHUB_TOKEN"`
	APIBaseURL string   `envconfig:"GITHUB_API_URL" default:"https://api.github.com/"`
	Timeout    Duration `envconfig:"GITHUB_TIMEOUT"`
}

// RequestTimeout returns the outbound request timeout, DefaultGitHubTimeout
// when unset or not positive.
func (c *GitHubConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultGitHubTimeout
	}
	return time.Duration(c.Timeout)
}
