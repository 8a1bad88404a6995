package logging

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("session", "login succeeded", "user", "alice")

	// Assert
	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[session]")
	assert.Contains(t, string(content), "login succeeded")
	assert.Contains(t, string(content), "user=alice")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("http", "below threshold")
	logger.Info("http", "also below")
	logger.Error("http", "kept")

	// Assert
	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "below threshold")
	assert.NotContains(t, string(content), "also below")
	assert.Contains(t, string(content), "kept")
}

func TestLogger_DisabledWithEmptyDir(t *testing.T) {
	// Setup
	logger := New("", slog.LevelDebug)

	// Execute: must not panic or create files
	logger.Info("session", "dropped")

	// Assert
	assert.NoError(t, logger.Close())
}
