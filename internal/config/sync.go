package config

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultProjectsLimit = 30

// ImportLimit is GITHUB_PROJECTS_LIMIT. A blank or zero value means the
// default cap.
type ImportLimit int

// Decode implements envconfig.Decoder
func (l *ImportLimit) Decode(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*l = 0
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid projects limit %q", value)
	}
	*l = ImportLimit(n)
	return nil
}

// SyncConfig holds project synchronization configuration
type SyncConfig struct {
	ExcludePatterns string      `envconfig:"GITHUB_EXCLUDE_PATTERNS"`
	ProjectsLimit   ImportLimit `envconfig:"GITHUB_PROJECTS_LIMIT"`
}

// Patterns returns the exclusion list split on commas, trimmed, with empty
// entries dropped.
func (c *SyncConfig) Patterns() []string {
	return splitList(c.ExcludePatterns)
}

// Limit returns the configured import cap. Unset or zero gives
// DefaultProjectsLimit; negative values are raised to one.
func (c *SyncConfig) Limit() int {
	switch {
	case c.ProjectsLimit == 0:
		return DefaultProjectsLimit
	case c.ProjectsLimit < 0:
		return 1
	}
	return int(c.ProjectsLimit)
}
