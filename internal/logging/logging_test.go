package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/logging"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetup_JSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	closer := logging.Setup(logging.Options{Out: &buf, JSON: true})
	assert.Nil(t, closer)

	slog.Info("hello", config.LogKeyComponent, config.CompMain)
	slog.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, config.CompMain, line[config.LogKeyComponent])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetup_TextDebug(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	logging.Setup(logging.Options{Out: &buf, Debug: true})
	slog.Debug("visible", config.LogKeyCount, 3)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "count=3")
	assert.Contains(t, buf.String(), "source=")
}

func TestSetup_Quiet(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	logging.Setup(logging.Options{Out: &buf, Quiet: true})
	slog.Info("chatty")
	slog.Warn("important")

	assert.NotContains(t, buf.String(), "chatty")
	assert.Contains(t, buf.String(), "important")
}

func TestSetup_FileWriter(t *testing.T) {
	restoreDefault(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	closer := logging.Setup(logging.Options{File: true})
	if closer != nil {
		assert.NoError(t, closer.Close())
	}

	path, err := logging.FilePath()
	require.NoError(t, err)
	assert.Contains(t, path, config.AppID)
}

func TestStartupInfo(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logging.Setup(logging.Options{Out: &buf, JSON: true})

	logging.StartupInfo(config.CompCLI)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, config.MsgAppStarting, line["msg"])
	build, ok := line[config.LogKeyBuild].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, config.AppName, build[config.LogKeyApp])
	assert.Equal(t, config.Version, build[config.LogKeyVersion])
	assert.Equal(t, config.Commit, build[config.LogKeyCommit])
	assert.Equal(t, config.Date, build[config.LogKeyDate])
}
