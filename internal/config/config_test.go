package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, args, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Empty(t, args)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashflow.yaml")
	yaml := `
backend: memory
state_key: from_file
log:
  level: debug
  format: json
http:
  addr: 0.0.0.0:9000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("FLASHFLOW_STATE_KEY", "from_env")
	t.Setenv("FLASHFLOW_LOG__LEVEL", "warn")
	t.Setenv("FLASHFLOW_PERSIST_TIMEOUT", "2s")

	cfg, args, err := Load([]string{"--config", path, "--log-level", "error", "serve"})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Backend, "file overrides defaults")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr)
	assert.Equal(t, "from_env", cfg.StateKey, "env overrides file")
	assert.Equal(t, 2*time.Second, cfg.PersistTimeout)
	assert.Equal(t, "error", cfg.Log.Level, "flags override env")
	assert.Equal(t, "flashflow.db", cfg.SQLite.Path)
	assert.Equal(t, []string{"serve"}, args)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"--backend", "postgres"}},
		{"unknown log level", []string{"--log-level", "loud"}},
		{"redis without url", []string{"--backend", "redis"}},
		{"sqlite without path", []string{"--db", ""}},
		{"zero timeout", []string{"--persist-timeout", "0s"}},
		{"unknown flag", []string{"--nope"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Load(tc.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadRedisBackend(t *testing.T) {
	cfg, _, err := Load([]string{"--backend", "redis", "--redis-url", "redis://localhost:6379/0"})
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}
