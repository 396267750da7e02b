package github

import "strings"

// ShouldExclude reports whether a repository is left out of the import.
// Forks are always excluded; otherwise any non-empty pattern found in the
// name, ignoring case, excludes it.
func ShouldExclude(repo RepoDescriptor, patterns []string) bool {
	if repo.Fork {
		return true
	}

	name := strings.ToLower(repo.Name)
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(name, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
