package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
  env: production
database:
  driver: mysql
  url: "user:pass@tcp(localhost:3306)/hirehub"
auth:
  require_verification: true
client:
  api_base_url: "http://api.local"
  reconnect_interval: 30s
  persist:
    type: redis
    redis_url: "redis://localhost:6379/1"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Auth.RequireVerification)
	assert.Equal(t, "http://api.local", cfg.Client.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.ReconnectInterval)
	assert.Equal(t, "redis", cfg.Client.Persist.Type)
	// значения, которых нет в файле, остаются по умолчанию
	assert.Equal(t, "hirehub_", cfg.Client.Persist.KeyPrefix)
	assert.Equal(t, 10*time.Second, cfg.Client.RequestTimeout)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Client.Persist.Type)
	assert.Zero(t, cfg.Client.ReconnectInterval)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "http://env.local")
	t.Setenv("PERSIST_TYPE", "memory")
	t.Setenv("REQUIRE_VERIFICATION", "1")
	t.Setenv("RECONNECT_INTERVAL", "1m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://env.local", cfg.Client.APIBaseURL)
	assert.Equal(t, "memory", cfg.Client.Persist.Type)
	assert.True(t, cfg.Auth.RequireVerification)
	assert.Equal(t, time.Minute, cfg.Client.ReconnectInterval)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
