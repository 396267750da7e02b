package github

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-api/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

// SyncServiceImpl imports an account's GitHub repositories as projects.
//
// Runs are independent: nothing is carried between calls and nothing is
// retried. Concurrent runs are not coordinated; each one commits its own
// transaction.
type SyncServiceImpl struct {
	client   RepositoryLister
	store    ProjectStore
	account  string
	patterns []string
	limit    int
	logger   *logrus.Logger
	now      func() time.Time
}

var _ SyncService = (*SyncServiceImpl)(nil)

// NewSyncService creates a new sync service
func NewSyncService(
	client RepositoryLister,
	store ProjectStore,
	githubCfg *config.GitHubConfig,
	syncCfg *config.SyncConfig,
	logger *logrus.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		client:   client,
		store:    store,
		account:  githubCfg.Username,
		patterns: syncCfg.Patterns(),
		limit:    syncCfg.Limit(),
		logger:   logger,
		now:      time.Now,
	}
}

// Sync fetches the account's repositories and reconciles them with the
// stored projects. Nothing is written unless the fetch succeeded.
func (s *SyncServiceImpl) Sync(ctx context.Context, limit int) (*models.SyncSummary, error) {
	if limit < 1 {
		limit = s.limit
	}

	logger := s.logger.WithFields(logrus.Fields{
		"account": s.account,
		"limit":   limit,
		"action":  "project_sync",
	})

	if s.account == "" {
		err := apperrors.NewConfigurationError("GITHUB_USERNAME")
		logger.WithError(err).Error("Project sync is not configured")
		return nil, err
	}

	logger.Info("Starting project sync")

	repos, err := s.client.ListRepositories(ctx, s.account, limit)
	if err != nil {
		logger.WithError(err).Error("Failed to fetch repositories")
		return nil, err
	}
	logger.WithField("fetched", len(repos)).Info("Fetched repositories")

	if err := ctx.Err(); err != nil {
		logger.WithError(err).Warn("Project sync canceled before reconciliation")
		return nil, err
	}

	summary, err := s.Reconcile(ctx, repos, limit)
	if err != nil {
		logger.WithError(err).Error("Failed to reconcile projects")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"fetched":  summary.Fetched,
		"imported": summary.Imported,
		"excluded": summary.Excluded,
	}).Info("Project sync completed")

	return summary, nil
}

// Reconcile filters repos, keeps the first limit survivors in fetch order and
// upserts them by slug in a single transaction.
func (s *SyncServiceImpl) Reconcile(ctx context.Context, repos []RepoDescriptor, limit int) (*models.SyncSummary, error) {
	if limit < 1 {
		limit = s.limit
	}

	syncedAt := s.now()
	records := make([]*models.ProjectSync, 0, min(len(repos), limit))
	for _, repo := range repos {
		if len(records) == limit {
			break
		}
		if ShouldExclude(repo, s.patterns) {
			continue
		}
		records = append(records, Normalize(repo, syncedAt))
	}

	if len(records) > 0 {
		if err := s.store.UpsertProjects(ctx, records); err != nil {
			return nil, apperrors.NewPersistenceError("upsert projects", err)
		}
	}

	return &models.SyncSummary{
		Fetched:  len(repos),
		Imported: len(records),
		Excluded: len(repos) - len(records),
	}, nil
}
