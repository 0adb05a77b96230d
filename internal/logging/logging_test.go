package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/logging"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := logging.New(logging.Options{Level: "warn", Stdout: &buf})
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("kept", "trip_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "abc", entry["trip_id"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "chatty", Stdout: &buf})

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.NotZero(t, buf.Len())
}

func TestNew_TeesToRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	var buf bytes.Buffer
	logger, closer := logging.New(logging.Options{Level: "info", File: path, Stdout: &buf})

	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
	assert.Contains(t, string(data), `"msg":"hello"`)
}
