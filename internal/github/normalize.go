package github

import (
	"strings"
	"time"

	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

// FallbackDescription is stored when a repository has no description.
const FallbackDescription = "No description provided."

// Normalize maps a repository to the project fields a sync writes.
//
// The slug is the lowercased name and nothing more. Unlike projects created
// through the API it is not slugified, so two names differing only in case
// land on the same project. Visible is always true: a sync re-publishes
// projects an admin has hidden.
func Normalize(repo RepoDescriptor, syncedAt time.Time) *models.ProjectSync {
	description := FallbackDescription
	if repo.Description != nil && *repo.Description != "" {
		description = *repo.Description
	}

	homepage := repo.HTMLURL
	if repo.Homepage != nil && *repo.Homepage != "" {
		homepage = *repo.Homepage
	}

	return &models.ProjectSync{
		Slug:        strings.ToLower(repo.Name),
		Name:        repo.Name,
		Description: description,
		GitHubRepo:  repo.FullName,
		Homepage:    homepage,
		Language:    repo.Language,
		Stars:       repo.Stars,
		Visible:     true,
		SyncedAt:    syncedAt,
	}
}
