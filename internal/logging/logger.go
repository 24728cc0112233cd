// Package logging wraps charmbracelet/log with the viewer's defaults.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field names shared by all log calls.
const (
	FieldPath        = "path"
	FieldURL         = "url"
	FieldContentType = "content_type"
	FieldLines       = "lines"
	FieldFolds       = "folds"
	FieldTheme       = "theme"
	FieldFontSize    = "font_size"
	FieldVersion     = "version"
	FieldCommit      = "commit"
	FieldBuilt       = "built"
	FieldError       = "error"
)

var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a stderr logger at the given level ("debug", "info", "warn", "error").
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	setLoggerLevel(logger, level)
	return logger
}

// NewFile creates a logger that writes timestamped entries to a size-capped
// rotating file. The terminal viewer uses it because stderr belongs to the screen.
func NewFile(path, level string) (*log.Logger, io.Closer) {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
	}
	logger := log.NewWithOptions(writer, log.Options{
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
	setLoggerLevel(logger, level)
	return logger, writer
}

// StatePath returns the log file location under XDG_STATE_HOME, ~/.local/state,
// or the temp dir, in that order.
func StatePath(appName string) string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", appName, appName+".log")
	}
	return filepath.Join(os.TempDir(), appName, appName+".log")
}

func setLoggerLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level logger.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
	})
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultLoggerOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel updates the level of the package-level logger.
func SetLevel(level string) {
	setLoggerLevel(Default(), level)
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
