package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorPredicates(t *testing.T) {
	notFound := NewNotFoundError("project not found", nil)
	wrapped := fmt.Errorf("lookup: %w", notFound)

	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInvalidInput(wrapped))
	assert.True(t, IsInvalidInput(NewValidationError("bad", nil)))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("no", nil)))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}

func TestAppError_Message(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewInternalError("failed", cause)

	assert.Equal(t, "INTERNAL: failed (caused by: boom)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NOT_FOUND: gone", NewNotFoundError("gone", nil).Error())
}

func TestSyncErrorTaxonomy(t *testing.T) {
	cfgErr := NewConfigurationError("GITHUB_USERNAME")
	assert.True(t, IsConfiguration(cfgErr))
	assert.Equal(t, "GITHUB_USERNAME is not configured", cfgErr.Error())

	upErr := fmt.Errorf("fetch: %w", NewUpstreamError(403, `{"message":"Forbidden"}`))
	require.True(t, IsUpstream(upErr))
	var target *UpstreamError
	require.True(t, stderrors.As(upErr, &target))
	assert.Equal(t, 403, target.StatusCode)
	assert.Equal(t, `{"message":"Forbidden"}`, target.Body)

	cause := stderrors.New("unique violation")
	pErr := NewPersistenceError("upsert projects", cause)
	assert.True(t, IsPersistence(pErr))
	assert.ErrorIs(t, pErr, cause)

	assert.False(t, IsUpstream(cfgErr))
	assert.False(t, IsPersistence(upErr))
}
