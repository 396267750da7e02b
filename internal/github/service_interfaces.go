package github

import (
	"context"

	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

// RepositoryLister defines the GitHub API client interface used by the sync
type RepositoryLister interface {
	// ListRepositories returns the account's repositories, most recently
	// updated first, at most min(max(limit, 1), 100) of them.
	ListRepositories(ctx context.Context, account string, limit int) ([]RepoDescriptor, error)
}

// ProjectStore defines the persistence the sync writes to
type ProjectStore interface {
	// UpsertProjects creates or updates every project keyed by slug in one
	// transaction. Either all rows are written or none are.
	UpsertProjects(ctx context.Context, projects []*models.ProjectSync) error
}

// SyncService defines the interface for project sync operations
type SyncService interface {
	// Sync runs one fetch, filter, normalize and reconcile pass. A limit
	// below one falls back to the configured import cap.
	Sync(ctx context.Context, limit int) (*models.SyncSummary, error)
}
