package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, "level %q", in)
		assert.Equal(t, want, got, "level %q", in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("server.start", "addr", ":5000")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug is filtered at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "server.start", rec["msg"])
	assert.Equal(t, ":5000", rec["addr"])

	ts, ok := rec["time"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Output: &buf})
	require.NoError(t, err)

	l.Debug("ascii.convert", "rows", 3)
	out := buf.String()
	assert.Contains(t, out, "msg=ascii.convert")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "source=", "debug records the call site")
}

func TestNew_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(Config{Level: "info", Format: "xml", Output: &buf})
	assert.Error(t, err)

	_, err = New(Config{Level: "chatty", Output: &buf})
	assert.Error(t, err)
}

func TestNew_NilOutputDiscards(t *testing.T) {
	l, err := New(Config{Level: "info"})
	require.NoError(t, err)
	assert.NotPanics(t, func() { l.Info("dropped") })
}
