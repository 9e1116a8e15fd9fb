package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultLogger *logrus.Logger

func init() {
	defaultLogger = logrus.New()

	isTest := os.Getenv("GO_ENV") == "test"

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		if isTest {
			logLevel = "silent"
		} else {
			logLevel = "info"
		}
	}

	if logLevel == "silent" {
		defaultLogger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			level = logrus.InfoLevel
		}
		defaultLogger.SetLevel(level)
		// Stdout carries the MCP protocol in stdio mode, so logs go to
		// stderr unconditionally.
		defaultLogger.SetOutput(os.Stderr)
	}

	defaultLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// GetLogger returns the default logger instance.
func GetLogger() *logrus.Logger {
	return defaultLogger
}

// WithName creates a child logger with a name field.
func WithName(name string) *logrus.Entry {
	return defaultLogger.WithField("name", name)
}

// WithFields creates a logger with additional fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return defaultLogger.WithFields(fields)
}

// SetLevel sets the logging level.
func SetLevel(level logrus.Level) {
	defaultLogger.SetLevel(level)
}

// IsLevelEnabled checks if a log level is enabled.
func IsLevelEnabled(level logrus.Level) bool {
	return defaultLogger.IsLevelEnabled(level)
}

// ConfigureFromString applies a level name from CLI flags or config.
// "silent" discards all output; test mode always wins.
func ConfigureFromString(levelStr string) error {
	if os.Getenv("GO_ENV") == "test" || levelStr == "silent" {
		defaultLogger.SetOutput(io.Discard)
		return nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return err
	}
	defaultLogger.SetLevel(level)
	return nil
}
