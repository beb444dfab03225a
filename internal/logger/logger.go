// Package logger provides structured logging functionality using zap.
package logger

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide structured logging throughout the application
type Logger struct {
	*zap.SugaredLogger
	config *Config
}

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error)
	Level string

	// Format determines output format: "console" (human-readable) or "json" (machine-parseable)
	Format string

	// OutputPath is the file path for log output (empty = stderr only)
	OutputPath string

	// EnableCaller adds caller information to log entries
	EnableCaller bool
}

var defaultLogger *Logger

// New creates a new logger instance with the provided configuration.
// Logs go to stderr so that command output on stdout stays clean.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{
			Level:  "info",
			Format: "console",
		}
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	writeSyncs := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if cfg.OutputPath != "" {
		file, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open log file %s", cfg.OutputPath)
		}
		writeSyncs = append(writeSyncs, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writeSyncs...), level)

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{
		SugaredLogger: zap.New(core, opts...).Sugar(),
		config:        cfg,
	}, nil
}

// Init initializes the global logger instance
func Init(cfg *Config) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// Get returns the global logger instance
func Get() *Logger {
	if defaultLogger == nil {
		logger, _ := New(nil)
		defaultLogger = logger
	}
	return defaultLogger
}

// Zap returns the structured logger handed to library packages
func (l *Logger) Zap() *zap.Logger {
	return l.Desugar()
}

// WithFields returns a logger with the specified fields attached for structured logging
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.With(fields...),
		config:        l.config,
	}
}

// WithRunID returns a logger with run_id field attached
func (l *Logger) WithRunID(runID string) *Logger {
	return l.WithFields("run_id", runID)
}

// WithOperation returns a logger with operation field attached
func (l *Logger) WithOperation(operation string) *Logger {
	return l.WithFields("operation", operation)
}

// WithError returns a logger with error field attached
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields("error", err)
}

// ParseLevel converts a string log level to zapcore.Level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Errorf("invalid log level %q", level)
	}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}

// WithFields returns a logger with the specified fields attached
func WithFields(fields ...interface{}) *Logger {
	return Get().WithFields(fields...)
}

// WithOperation returns a logger with operation field attached
func WithOperation(operation string) *Logger {
	return Get().WithOperation(operation)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Get().Sync()
}
