package services

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SlogLogger adapts a *slog.Logger to the Logger interface and tags every
// record with the service name.
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(service string, w io.Writer, level slog.Level, structured bool) *SlogLogger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(handler).With("service", service)}
}

func (s *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

func (s *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Slog exposes the underlying logger for code that wants slog directly.
func (s *SlogLogger) Slog() *slog.Logger {
	return s.logger
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Environment-based logger factory
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "test" {
		return &NoOpLogger{}
	}

	level := ParseLevel(os.Getenv("LOG_LEVEL"))

	// Use structured logging in production
	structured := strings.ToLower(os.Getenv("ENV")) == "production"
	return NewSlogLogger(service, os.Stdout, level, structured)
}
