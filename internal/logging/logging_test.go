package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("shown", "todos", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "todos=3")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("toggle", "key", "r")
	assert.Contains(t, buf.String(), `"key":"r"`)
}

func TestLogFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tada.log")
	logger, closeFn, err := New(Options{Level: "info", File: p}, nil)
	require.NoError(t, err)

	logger.Info("saved")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "saved")
}

func TestNilFallbackDiscards(t *testing.T) {
	logger, _, err := New(Options{}, nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Error("dropped") })
}

func TestBadOptions(t *testing.T) {
	_, _, err := New(Options{Level: "loud"}, nil)
	assert.Error(t, err)

	_, _, err = New(Options{Format: "xml"}, nil)
	assert.ErrorContains(t, err, "unknown log format")
}
