package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 100.0, cfg.Server.RateLimit.RPS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 30, cfg.Data.DefaultDays)
	assert.Equal(t, int64(42), cfg.Data.SampleSeed)
	assert.Equal(t, "reports", cfg.Export.Dir)
	assert.Equal(t, 30*time.Second, cfg.Platforms.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PULSE_SERVER_PORT", "9090")
	t.Setenv("PULSE_LOGGING_LEVEL", "debug")
	t.Setenv("PULSE_DATA_SAMPLE_SEED", "7")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(7), cfg.Data.SampleSeed)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 3000
logging:
  level: warn
data:
  default_days: 60
`
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0644))
	t.Setenv("PULSE_CONFIG", configPath)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 60, cfg.Data.DefaultDays)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 3000\n"), 0644))
	t.Setenv("PULSE_CONFIG", configPath)
	t.Setenv("PULSE_SERVER_PORT", "4000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("PULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PULSE_LOGGING_LEVEL", "verbose")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PULSE_SERVER_PORT", "70000")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}
