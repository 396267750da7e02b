package config

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the JSON logrus logger used by every binary. An unknown
// LOG_LEVEL falls back to info with a warning.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(out)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.WithField("level", level).Warn("Unknown log level, using info")
		return logger
	}
	logger.SetLevel(parsed)
	return logger
}
