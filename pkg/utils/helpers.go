package utils

import (
	"net/url"
)

// IsValidHTTPURL reports whether raw is an absolute http or https URL with a host.
func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
