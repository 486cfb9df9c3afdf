// Package logging provides structured logging for the shipforge combat
// core. It wraps Go's standard slog package so hosts get consistent JSON
// output with battle IDs threaded through context, while library users
// that pass no logger get silence.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with battle-scoped context helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with JSON output on stdout. The level is
// controlled by the SHIPFORGE_LOG_LEVEL environment variable
// (DEBUG, INFO, WARN, ERROR; default INFO).
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: getLogLevelFromEnv(),
	})
	return &Logger{slog.New(handler)}
}

// NewLoggerAt creates a Logger at an explicit level, for hosts that
// configure levels themselves.
func NewLoggerAt(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// LogWithContext logs a message, attaching the context's battle ID when
// one is present. Nil receivers drop the message.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil {
		return
	}
	if battleID := GetBattleID(ctx); battleID != "" {
		args = append(args, "battle_id", battleID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

// battleIDKey is the context key for battle IDs.
type battleIDKey struct{}

// WithBattleID tags the context with the battle it belongs to so every
// log line from that battle carries the ID.
func WithBattleID(ctx context.Context, battleID string) context.Context {
	return context.WithValue(ctx, battleIDKey{}, battleID)
}

// GetBattleID extracts the battle ID from the context, or "" when unset.
func GetBattleID(ctx context.Context) string {
	if id, ok := ctx.Value(battleIDKey{}).(string); ok {
		return id
	}
	return ""
}

// getLogLevelFromEnv determines the log level from the environment.
func getLogLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("SHIPFORGE_LOG_LEVEL"))
}

// ParseLevel maps a level name to a slog level, defaulting to Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WrapError wraps an error with additional context information,
// preserving the original error for errors.Is/As.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
