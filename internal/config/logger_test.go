package config

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("account", "octocat").Debug("hello")
	assert.Contains(t, buf.String(), `"account":"octocat"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("chatty", &buf)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "Unknown log level")
}
