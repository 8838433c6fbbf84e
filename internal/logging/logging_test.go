package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daileit/wedding-planner/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("plan created", "plan_id", "p-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "plan created", entry["msg"])
	assert.Equal(t, "p-1", entry["plan_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logging.New(&buf, slog.LevelDebug, "text").Debug("resolving owner", "kind", "plan")

	out := buf.String()
	assert.Contains(t, out, "resolving owner")
	assert.Contains(t, out, "kind=plan")
	assert.NotContains(t, out, "\x1b[", "no colors when not writing to a terminal")
}
