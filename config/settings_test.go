package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 5, s.Preview.Before)
	assert.Equal(t, 10, s.Preview.After)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Empty(t, s.Editor)
}

func TestSettingsFile(t *testing.T) {
	t.Setenv("MINIGREP_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "minigrep", "config.yaml"), SettingsFile())

	t.Setenv("MINIGREP_CONFIG", "/etc/minigrep.yaml")
	assert.Equal(t, "/etc/minigrep.yaml", SettingsFile())
}

func TestLoadSettingsMissingDefault(t *testing.T) {
	t.Setenv("MINIGREP_CONFIG", "")
	t.Setenv(EditorEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsMissingExplicit(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettingsFromFile(t *testing.T) {
	t.Setenv(EditorEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "editor: vim\npreview:\n  before: 2\nlog:\n  level: debug\n  file: /tmp/minigrep.log\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "vim", s.Editor)
	assert.Equal(t, 2, s.Preview.Before)
	assert.Equal(t, 10, s.Preview.After, "unset keys keep defaults")
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "/tmp/minigrep.log", s.Log.File)
}

func TestLoadSettingsClampsNegativeContext(t *testing.T) {
	t.Setenv(EditorEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preview:\n  before: -3\n  after: -1\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Preview.Before)
	assert.Equal(t, 0, s.Preview.After)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preview: [unterminated"), 0o644))

	s, err := LoadSettings(path)
	require.Error(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsEditorEnv(t *testing.T) {
	t.Setenv("MINIGREP_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EditorEnv, "code")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "code", s.Editor)
}

func TestLoadSettingsCapsLargeContext(t *testing.T) {
	t.Setenv(EditorEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := fmt.Sprintf("preview:\n  before: %d\n  after: %d\n", math.MaxInt, MaxPreviewContext+1)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, MaxPreviewContext, s.Preview.Before)
	assert.Equal(t, MaxPreviewContext, s.Preview.After)
}
