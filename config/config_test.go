package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		"FSPROPS_LOG_LEVEL":          "debug",
		"FSPROPS_LOG_FORMAT":         "console",
		"FSPROPS_THEME":              "dracula",
		"FSPROPS_CACHE":              "false",
		"FSPROPS_CACHE_PATH":         "/tmp/x.db",
		"FSPROPS_REFRESH_ON_FAILURE": "0",
		"FSPROPS_PROGRESS_INTERVAL":  "1s",
		"FSPROPS_HOME_TILDE":         "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "/tmp/x.db", cfg.CachePath)
	assert.False(t, cfg.RefreshOnFailure)
	assert.Equal(t, time.Second, cfg.ProgressInterval)
	assert.False(t, cfg.ReplaceHomeWithTilde)
}

func TestFromEnv_Invalid(t *testing.T) {
	_, err := FromEnv(mapLookup(map[string]string{
		"FSPROPS_CACHE":             "maybe",
		"FSPROPS_PROGRESS_INTERVAL": "-1s",
		"FSPROPS_LOG_FORMAT":        "xml",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FSPROPS_CACHE")
	assert.Contains(t, err.Error(), "FSPROPS_PROGRESS_INTERVAL")
	assert.Contains(t, err.Error(), "FSPROPS_LOG_FORMAT")
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FSPROPS_THEME=catppuccin\n"), 0o644))
	t.Setenv("FSPROPS_THEME", "")
	require.NoError(t, os.Unsetenv("FSPROPS_THEME"))

	cfg, err := Load(envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "catppuccin", cfg.Theme)
}
