package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalize(t *testing.T) {
	syncedAt := time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC)

	t.Run("maps every field", func(t *testing.T) {
		repo := RepoDescriptor{
			ID:          7,
			Name:        "My-Portfolio",
			FullName:    "octocat/My-Portfolio",
			Description: strPtr("Personal site"),
			HTMLURL:     "https://github.com/octocat/My-Portfolio",
			Homepage:    strPtr("https://octocat.dev"),
			Language:    strPtr("TypeScript"),
			Stars:       12,
		}

		got := Normalize(repo, syncedAt)

		assert.Equal(t, "my-portfolio", got.Slug)
		assert.Equal(t, "My-Portfolio", got.Name)
		assert.Equal(t, "Personal site", got.Description)
		assert.Equal(t, "octocat/My-Portfolio", got.GitHubRepo)
		assert.Equal(t, "https://octocat.dev", got.Homepage)
		require.NotNil(t, got.Language)
		assert.Equal(t, "TypeScript", *got.Language)
		assert.Equal(t, 12, got.Stars)
		assert.True(t, got.Visible)
		assert.Equal(t, syncedAt, got.SyncedAt)
	})

	t.Run("null description uses fallback", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "x", HTMLURL: "https://x/y"}, syncedAt)
		assert.Equal(t, "No description provided.", got.Description)
	})

	t.Run("empty description uses fallback", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "x", Description: strPtr("")}, syncedAt)
		assert.Equal(t, FallbackDescription, got.Description)
	})

	t.Run("null homepage uses canonical url", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "y", HTMLURL: "https://x/y"}, syncedAt)
		assert.Equal(t, "https://x/y", got.Homepage)
	})

	t.Run("empty homepage uses canonical url", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "y", HTMLURL: "https://x/y", Homepage: strPtr("")}, syncedAt)
		assert.Equal(t, "https://x/y", got.Homepage)
	})

	t.Run("null language passes through", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "y"}, syncedAt)
		assert.Nil(t, got.Language)
	})

	t.Run("slug keeps punctuation", func(t *testing.T) {
		got := Normalize(RepoDescriptor{Name: "Go.Tools_v2"}, syncedAt)
		assert.Equal(t, "go.tools_v2", got.Slug)
	})
}

func TestNormalize_Deterministic(t *testing.T) {
	repo := RepoDescriptor{
		Name:     "Repo",
		FullName: "octocat/Repo",
		HTMLURL:  "https://github.com/octocat/Repo",
		Stars:    3,
	}
	at := time.Now()

	first := Normalize(repo, at)
	second := Normalize(repo, at)
	assert.Equal(t, first, second)
}
