package github

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/portfolio-api/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
)

const reposPayload = `[
	{
		"id": 1,
		"name": "Portfolio",
		"full_name": "octocat/Portfolio",
		"description": "Personal site",
		"html_url": "https://github.com/octocat/Portfolio",
		"homepage": "https://octocat.dev",
		"language": "Go",
		"stargazers_count": 42,
		"updated_at": "2024-03-21T10:00:00Z",
		"fork": false
	},
	{
		"id": 2,
		"name": "forked-lib",
		"full_name": "octocat/forked-lib",
		"description": null,
		"html_url": "https://github.com/octocat/forked-lib",
		"homepage": null,
		"language": null,
		"stargazers_count": 0,
		"updated_at": "2024-03-20T10:00:00Z",
		"fork": true
	}
]`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupTestClient(t *testing.T, token string, handler http.HandlerFunc) (*GitHubClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGitHubClient(&config.GitHubConfig{
		Token:      token,
		APIBaseURL: server.URL,
		Timeout:    config.Duration(5 * time.Second),
	}, testLogger())
	require.NoError(t, err)

	return client, server
}

func TestGitHubClient_ListRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("successful request", func(t *testing.T) {
		client, _ := setupTestClient(t, "test-token", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/users/octocat/repos", r.URL.Path)
			assert.Equal(t, "updated", r.URL.Query().Get("sort"))
			assert.Equal(t, "desc", r.URL.Query().Get("direction"))
			assert.Equal(t, "30", r.URL.Query().Get("per_page"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(reposPayload))
		})

		repos, err := client.ListRepositories(ctx, "octocat", 30)
		require.NoError(t, err)
		require.Len(t, repos, 2)

		first := repos[0]
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, "Portfolio", first.Name)
		assert.Equal(t, "octocat/Portfolio", first.FullName)
		require.NotNil(t, first.Description)
		assert.Equal(t, "Personal site", *first.Description)
		assert.Equal(t, "https://github.com/octocat/Portfolio", first.HTMLURL)
		require.NotNil(t, first.Homepage)
		assert.Equal(t, "https://octocat.dev", *first.Homepage)
		require.NotNil(t, first.Language)
		assert.Equal(t, "Go", *first.Language)
		assert.Equal(t, 42, first.Stars)
		assert.Equal(t, time.Date(2024, 3, 21, 10, 0, 0, 0, time.UTC), first.UpdatedAt.UTC())
		assert.False(t, first.Fork)

		second := repos[1]
		assert.Nil(t, second.Description)
		assert.Nil(t, second.Homepage)
		assert.Nil(t, second.Language)
		assert.True(t, second.Fork)
	})

	t.Run("anonymous request without token", func(t *testing.T) {
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		})

		repos, err := client.ListRepositories(ctx, "octocat", 10)
		require.NoError(t, err)
		assert.Empty(t, repos)
	})

	t.Run("page size is clamped", func(t *testing.T) {
		var perPage atomic.Value
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			perPage.Store(r.URL.Query().Get("per_page"))
			w.Write([]byte(`[]`))
		})

		_, err := client.ListRepositories(ctx, "octocat", 500)
		require.NoError(t, err)
		assert.Equal(t, "100", perPage.Load())

		_, err = client.ListRepositories(ctx, "octocat", 0)
		require.NoError(t, err)
		assert.Equal(t, "1", perPage.Load())
	})

	t.Run("missing account fails before any request", func(t *testing.T) {
		var hits int32
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		})

		_, err := client.ListRepositories(ctx, "", 30)
		require.Error(t, err)
		assert.True(t, apperrors.IsConfiguration(err))
		assert.Zero(t, atomic.LoadInt32(&hits))
	})

	t.Run("forbidden response", func(t *testing.T) {
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Forbidden"}`))
		})

		_, err := client.ListRepositories(ctx, "octocat", 30)
		require.Error(t, err)

		var upErr *apperrors.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusForbidden, upErr.StatusCode)
		assert.Contains(t, upErr.Body, "Forbidden")
	})

	t.Run("server error is not retried", func(t *testing.T) {
		var hits int32
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"upstream down"}`))
		})

		_, err := client.ListRepositories(ctx, "octocat", 30)
		require.Error(t, err)
		assert.True(t, apperrors.IsUpstream(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("canceled context", func(t *testing.T) {
		client, _ := setupTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := client.ListRepositories(canceled, "octocat", 30)
		require.Error(t, err)
		assert.False(t, apperrors.IsUpstream(err))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{requested: -5, want: 1},
		{requested: 0, want: 1},
		{requested: 1, want: 1},
		{requested: 30, want: 30},
		{requested: 100, want: 100},
		{requested: 101, want: 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageSize(tt.requested), "requested %d", tt.requested)
	}
}

func TestNewGitHubClient_InvalidBaseURL(t *testing.T) {
	_, err := NewGitHubClient(&config.GitHubConfig{APIBaseURL: "://bad"}, testLogger())
	assert.Error(t, err)
}
