package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultConfig(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, "info", logger.config.Level)
	assert.Equal(t, "console", logger.config.Format)
	assert.NotNil(t, logger.Zap())
}

func TestNew_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "pageseg.log")
	logger, err := New(&Config{Level: "info", Format: "json", OutputPath: logFile})
	require.NoError(t, err)

	logger.WithRunID("run-1").WithOperation("segment").Info("page segmented")
	_ = logger.Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "page segmented", entry["msg"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "segment", entry["operation"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&Config{Level: "invalid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = New(&Config{Level: "info", OutputPath: "/nonexistent/directory/test.log"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestInit_GlobalLogger(t *testing.T) {
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = nil })

	require.NoError(t, Init(&Config{Level: "debug", Format: "console"}))
	assert.Equal(t, "debug", Get().config.Level)

	WithFields("key", "value").Debug("message with fields")
	WithOperation("test").Info("message with operation")
	assert.NotPanics(t, func() { _ = Sync() })
}

func TestGet_CreatesDefaultLogger(t *testing.T) {
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = nil })

	logger := Get()
	require.NotNil(t, logger)
	assert.Equal(t, "info", logger.config.Level)
	assert.Same(t, logger, Get())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevels(t *testing.T) {
	tmpDir := t.TempDir()
	tests := []struct {
		name         string
		level        string
		log          func(*Logger)
		shouldAppear bool
	}{
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("message") }, true},
		{"info level skips debug", "info", func(l *Logger) { l.Debug("message") }, false},
		{"warn level skips info", "warn", func(l *Logger) { l.Info("message") }, false},
		{"warn level logs warn", "warn", func(l *Logger) { l.Warn("message") }, true},
		{"error level skips warn", "error", func(l *Logger) { l.Warn("message") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".log")
			logger, err := New(&Config{Level: tt.level, Format: "json", OutputPath: path})
			require.NoError(t, err)

			tt.log(logger)
			_ = logger.Sync()

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.shouldAppear, strings.Contains(string(content), "message"))
		})
	}
}
