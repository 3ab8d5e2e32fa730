package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden message")
	logger.Error("failed to save favorites", slog.String("key", "favorites"))

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "failed to save favorites")
	assert.Contains(t, out, "favorites")
}

func TestPtermLevel(t *testing.T) {
	tests := []struct {
		in       slog.Level
		expected pterm.LogLevel
	}{
		{slog.LevelDebug, pterm.LogLevelDebug},
		{slog.LevelInfo, pterm.LogLevelInfo},
		{slog.LevelWarn, pterm.LogLevelWarn},
		{slog.LevelError, pterm.LogLevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ptermLevel(tt.in))
		})
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "osintex.log")
	logger, closer, err := OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)

	logger.Debug("opened url")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "opened url")
}
