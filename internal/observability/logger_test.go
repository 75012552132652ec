package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/contact900/weather-route-visualizer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "json"})
	require.NotNil(t, logger)
	assert.Same(t, logger, slog.Default())
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestNewStreamLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newStreamLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("route planned", "waypoints", 6)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "route planned", entry["msg"])
	assert.InDelta(t, 6, entry["waypoints"], 0)
}

func TestNewStreamLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newStreamLogger(&buf, "WARN", "text")

	logger.Info("hidden")
	logger.Warn("reverse geocode failed", "lat", 41.5)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="reverse geocode failed"`)
	assert.Contains(t, out, "lat=41.5")
}

func TestNewStreamLogger_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newStreamLogger(&buf, "verbose", "json")

	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
