package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v82/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Kamar-Folarin/portfolio-api/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
)

// MaxPageSize is the hard per_page cap of the GitHub listing endpoints.
const MaxPageSize = 100

// GitHubClient lists repositories through the GitHub REST API
type GitHubClient struct {
	client *gh.Client
	logger *logrus.Logger
}

var _ RepositoryLister = (*GitHubClient)(nil)

// NewGitHubClient creates a GitHub client. A token is optional: when set it
// is sent as a bearer credential, which raises the rate limit and exposes
// private repositories.
func NewGitHubClient(cfg *config.GitHubConfig, logger *logrus.Logger) (*GitHubClient, error) {
	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.RequestTimeout()

	client := gh.NewClient(httpClient)
	if cfg.APIBaseURL != "" {
		baseURL, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIBaseURL, err)
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		client.BaseURL = baseURL
	}

	return &GitHubClient{
		client: client,
		logger: logger,
	}, nil
}

// PageSize clamps a requested size to the range accepted by the API.
func PageSize(requested int) int {
	return min(max(requested, 1), MaxPageSize)
}

// ListRepositories gets the account's repositories ordered by last update,
// newest first
func (c *GitHubClient) ListRepositories(ctx context.Context, account string, limit int) ([]RepoDescriptor, error) {
	if account == "" {
		return nil, apperrors.NewConfigurationError("GITHUB_USERNAME")
	}

	opts := &gh.RepositoryListByUserOptions{
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: PageSize(limit),
		},
	}

	logger := c.logger.WithFields(logrus.Fields{
		"account":  account,
		"per_page": opts.PerPage,
	})
	logger.Debug("Requesting repositories from GitHub API")

	repos, resp, err := c.client.Repositories.ListByUser(ctx, account, opts)
	if err != nil {
		if upErr := upstreamError(err); upErr != nil {
			logger.WithError(upErr).Warn("GitHub API returned a non-success status")
			return nil, upErr
		}
		return nil, fmt.Errorf("failed to list repositories for %s: %w", account, err)
	}

	if resp != nil && resp.Rate.Limit > 0 {
		logger.WithField("rate_limit_remaining", resp.Rate.Remaining).Debug("Rate limit info")
	}

	result := make([]RepoDescriptor, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toDescriptor(repo))
	}
	return result, nil
}

func toDescriptor(repo *gh.Repository) RepoDescriptor {
	return RepoDescriptor{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.Description,
		HTMLURL:     repo.GetHTMLURL(),
		Homepage:    repo.Homepage,
		Language:    repo.Language,
		Stars:       repo.GetStargazersCount(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
		Fork:        repo.GetFork(),
	}
}
