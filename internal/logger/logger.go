// Package logger provides leveled logging for the editor.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Config holds logger settings, loaded from the [logger] config table.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
	// LogFilePath is the output log file. Empty means discard, "-" means stderr.
	LogFilePath string `toml:"log_file"`
}

// Level parses the configured level string, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initOnce      sync.Once
)

// Init initializes the logger package. Safe to call once; later calls are no-ops.
func Init(level slog.Level, output io.Writer) {
	initOnce.Do(func() {
		if output == nil {
			output = io.Discard
		}
		logLevel = new(slog.LevelVar)
		logLevel.Set(level)

		opts := slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					source := a.Value.Any().(*slog.Source)
					source.File = filepath.Base(source.File)
				}
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
				}
				return a
			},
		}
		handler := slog.NewTextHandler(output, &opts)
		defaultLogger = slog.New(handler)

		r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
		r.AddAttrs(slog.String("level", level.String()))
		_ = handler.Handle(context.Background(), r)
	})
}

// ensureInitialized provides a safe discard logger if Init was never called.
func ensureInitialized() {
	initOnce.Do(func() {
		logLevel = new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel})
		defaultLogger = slog.New(handler)
	})
}

// logAtLevel logs a record at the given level, capturing the caller of the wrapper.
func logAtLevel(level slog.Level, format string, args ...interface{}) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAtLevel, and the Debugf/Infof/... wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	return defaultLogger
}
