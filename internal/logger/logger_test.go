package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "ParseLevel(%q)", tt.input)
	}
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "").With("component", "cli")

	log.Debug("hidden")
	log.Info("rules selected", "count", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "rules selected")
	assert.Contains(t, out, "component"+reset+"=cli")
	assert.Contains(t, out, "count"+reset+"=2")
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "").With("mode", "filter").WithGroup("batch").With("size", 3)

	log.Info("line obfuscated", "line", 1, slog.Group("rules", "count", 2))

	out := buf.String()
	assert.Contains(t, out, "mode"+reset+"=filter")
	assert.Contains(t, out, "batch.size"+reset+"=3")
	assert.Contains(t, out, "batch.line"+reset+"=1")
	assert.Contains(t, out, "batch.rules.count"+reset+"=2")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelDebug, "json").Debug("rule applied", "rule", "liaison")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "rule applied", record["msg"])
	assert.Equal(t, "liaison", record["rule"])
}
