package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLiteConfig(t *testing.T) {
	cfg := DefaultLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.VaultPath)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadLiteConfig_Defaults(t *testing.T) {
	// Clear relevant env vars
	clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, "stdio", cfg.Transport)
}

func TestLoadLiteConfig_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	// Set environment variables
	os.Setenv("NURSING_TUTOR_DATA_DIR", "/tmp/test-nursing-tutor")
	os.Setenv("NURSING_TUTOR_CACHE_MAX_ITEMS", "500")
	os.Setenv("NURSING_TUTOR_CACHE_TTL", "12h")
	os.Setenv("NURSING_TUTOR_TRANSPORT", "http")
	os.Setenv("NURSING_TUTOR_HTTP_PORT", "9090")
	os.Setenv("NURSING_TUTOR_LOG_LEVEL", "debug")
	os.Setenv("OBSIDIAN_VAULT_PATH", "/tmp/test-vault")

	defer clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.Equal(t, "/tmp/test-nursing-tutor", cfg.DataDir)
	assert.Equal(t, 500, cfg.CacheMaxItems)
	assert.Equal(t, 12*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/test-vault", cfg.VaultPath)
}

func TestLiteConfig_ProgressDBPath(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/home/user/.nursing-tutor-mcp"}

	path := cfg.ProgressDBPath()

	assert.Equal(t, "/home/user/.nursing-tutor-mcp/progress.db", path)
}

func TestLiteConfig_ExportDir(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/home/user/.nursing-tutor-mcp"}

	path := cfg.ExportDir()

	assert.Equal(t, "/home/user/.nursing-tutor-mcp/exports", path)
}

func TestLiteConfig_EnsureDataDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cfg := &LiteConfig{DataDir: filepath.Join(tmpDir, "nursing-tutor")}

	err = cfg.EnsureDataDir()
	require.NoError(t, err)

	// Verify directories exist
	_, err = os.Stat(cfg.DataDir)
	assert.NoError(t, err)

	_, err = os.Stat(cfg.ExportDir())
	assert.NoError(t, err)
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"NURSING_TUTOR_DATA_DIR",
		"NURSING_TUTOR_CACHE_MAX_ITEMS",
		"NURSING_TUTOR_CACHE_TTL",
		"NURSING_TUTOR_TRANSPORT",
		"NURSING_TUTOR_HTTP_PORT",
		"NURSING_TUTOR_LOG_LEVEL",
		"NURSING_TUTOR_LOG_FORMAT",
		"OBSIDIAN_VAULT_PATH",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
