package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHTTPURL(t *testing.T) {
	assert.True(t, IsValidHTTPURL("https://octocat.dev"))
	assert.True(t, IsValidHTTPURL("http://localhost:3000/path?q=1"))
	assert.False(t, IsValidHTTPURL("ftp://octocat.dev"))
	assert.False(t, IsValidHTTPURL("octocat.dev"))
	assert.False(t, IsValidHTTPURL("https://"))
	assert.False(t, IsValidHTTPURL("://bad"))
	assert.False(t, IsValidHTTPURL(""))
}
