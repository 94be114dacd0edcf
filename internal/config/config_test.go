package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "courseflow", cfg.Database.DBName)
	assert.Equal(t, "courseflow.app", cfg.JWT.Issuer)
	assert.Equal(t, 60, cfg.Sharing.RatePerMinute)
	assert.Equal(t, 20, cfg.Sharing.RateBurst)
	assert.Equal(t, "http://localhost:8080", cfg.Sharing.BaseURL)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
jwt:
  secret: from-file
sharing:
  rate_per_minute: 30
`)
	require.NoError(t, os.WriteFile(configPath, content, 0o600))

	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	// Env wins over file, file wins over defaults
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 30, cfg.Sharing.RatePerMinute)
}

func TestLoadConfig_InvalidRateLimitRejected(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte(`
jwt:
  secret: test
sharing:
  rate_per_minute: -1
`)
	require.NoError(t, os.WriteFile(configPath, content, 0o600))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	conn := cfg.GetPostgresConnectionString()
	assert.Contains(t, conn, "postgres://")
	assert.Contains(t, conn, "@localhost:5432/courseflow")
	assert.Contains(t, conn, "sslmode=disable")
}
