package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Info("toggled", "active", false)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "toggled", entry["msg"])
	require.Equal(t, false, entry["active"])
	require.True(t, strings.HasSuffix(entry["time"].(string), "Z"), "expected UTC timestamp")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "text", Output: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestNew_Defaults(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(Options{Level: "verbose"})
	require.Error(t, err)

	_, err = New(Options{Format: "xml"})
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() { Discard().Error("nothing") })
}
