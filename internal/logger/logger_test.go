package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/loandash/internal/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), tt.input)
	}
}

func TestJSONOutputWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.WithFields(map[string]interface{}{"rows": 3, "path": "loans.csv"}).Info("dataset loaded")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "dataset loaded", entry["message"])
	assert.Equal(t, "loans.csv", entry["path"])
	assert.EqualValues(t, 3, entry["rows"])
	assert.Equal(t, "loandash", entry["app"])
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.WithError(errors.New("boom")).Error("render failed")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("hidden")
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "debug", Format: "console"}, &buf)

	log.WithField("panel", "histogram").Debug("rendered")
	out := buf.String()
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "panel=histogram")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("nothing") })
}
