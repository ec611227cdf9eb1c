package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ajitpratap0/titleclean/pkg/errors"
)

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titleclean.log")
	l, err := New(Config{Level: "debug", Encoding: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Debug("stage completed", zap.String("stage", "dedup"), zap.Int("rows", 4))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "stage completed", entry["message"])
	assert.Equal(t, "dedup", entry["stage"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitReplacesGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global.log")
	require.NoError(t, Init(Config{Level: "warn", Encoding: "json", OutputPaths: []string{path}}))
	defer func() { require.NoError(t, Init(DefaultConfig())) }()

	Info("not written")
	With(zap.String("component", "test")).Warn("written")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "not written")
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestInitRejectsBadConfig(t *testing.T) {
	before := Get()
	assert.Error(t, Init(Config{Level: "loud"}))
	assert.Same(t, before, Get())
}

func TestNewInvalidLevelIsConfigError(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	level, ok := errors.Detail(err, "level")
	assert.True(t, ok)
	assert.Equal(t, "loud", level)
}

func TestComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "component.log")
	require.NoError(t, Init(Config{Level: "info", Encoding: "json", OutputPaths: []string{path}}))
	defer func() { require.NoError(t, Init(DefaultConfig())) }()

	Component("cli").Info("starting cleaning run")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"cli"`)
}
