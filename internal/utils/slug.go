package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9._-]*[a-z0-9][a-z0-9._-]*$`)
)

// Slugify lowercases input, collapses every run of characters outside
// [a-z0-9] into a single dash and trims dashes from both ends.
func Slugify(input string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(input), "-")
	return strings.Trim(slug, "-")
}

// NormalizeSlug lowercases and trims an explicitly supplied slug. The result
// is kept as given, so a lowercased repository name such as "dotfiles.nvim"
// stays addressable by sync. ok is false when the slug holds characters
// outside [a-z0-9._-] or has no letter or digit.
func NormalizeSlug(input string) (slug string, ok bool) {
	slug = strings.ToLower(strings.TrimSpace(input))
	return slug, slugPattern.MatchString(slug)
}
