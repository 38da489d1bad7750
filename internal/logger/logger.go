package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog that carries the package/function
// breadcrumb and can mint errors that are logged exactly once at the
// point they are created.
type Logger struct {
	slog *slog.Logger
}

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func New(pkg string) Logger {
	return Logger{slog: slog.Default().With("package", pkg)}
}

func (l Logger) Function(function string) Logger {
	return Logger{slog: l.slog.With("function", function)}
}

func (l Logger) File(file string) Logger {
	return Logger{slog: l.slog.With("file", file)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{slog: l.slog.With(args...)}
}

func (l Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Err logs msg with the underlying error and returns a wrapped error for
// the caller to propagate.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.slog.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs an error without returning one, for paths that continue.
func (l Logger) Er(msg string, err error, args ...any) {
	l.slog.Error(msg, append(args, "error", err)...)
}

// Error logs msg with key/value context and returns a new error built
// from msg alone.
func (l Logger) Error(msg string, args ...any) error {
	l.slog.Error(msg, args...)
	return errors.New(msg)
}

// ErrMsg is Error without key/value context.
func (l Logger) ErrMsg(msg string) error {
	l.slog.Error(msg)
	return errors.New(msg)
}

// ErMsg logs msg at error level without returning anything.
func (l Logger) ErMsg(msg string) {
	l.slog.Error(msg)
}
