// Package config provides configuration management for the MCP server.
// This file contains the lightweight configuration for standalone operation.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LiteConfig is a simplified configuration for standalone operation.
// It requires no external databases and uses sensible defaults.
type LiteConfig struct {
	// Data storage
	DataDir string // Base directory for data files

	// Obsidian vault used by the note integration
	VaultPath string

	// Cache settings
	CacheMaxItems int           // Maximum items in memory cache
	CacheTTL      time.Duration // Default cache TTL

	// Transport settings
	Transport string // Transport type: stdio, http
	HTTPPort  int    // HTTP port (if transport is http)

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".nursing-tutor-mcp")
	vaultPath := filepath.Join(homeDir, "Documents", "NursingTutorVault")

	return &LiteConfig{
		DataDir:       dataDir,
		VaultPath:     vaultPath,
		CacheMaxItems: 1000,
		CacheTTL:      time.Hour,
		Transport:     "stdio",
		HTTPPort:      8080,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadLiteConfig loads configuration from environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	return ApplyEnv(DefaultLiteConfig())
}

// ApplyEnv overrides the given configuration with any NURSING_TUTOR_*
// environment variables that are set, returning the same pointer.
func ApplyEnv(cfg *LiteConfig) *LiteConfig {
	// Data directory
	if v := os.Getenv("NURSING_TUTOR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	// Obsidian vault
	if v := os.Getenv("OBSIDIAN_VAULT_PATH"); v != "" {
		cfg.VaultPath = v
	}

	// Cache settings
	if v := os.Getenv("NURSING_TUTOR_CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("NURSING_TUTOR_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	// Transport
	if v := os.Getenv("NURSING_TUTOR_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("NURSING_TUTOR_HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	// Logging
	if v := os.Getenv("NURSING_TUTOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NURSING_TUTOR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// ProgressDBPath returns the path to the learner progress SQLite database.
func (c *LiteConfig) ProgressDBPath() string {
	return filepath.Join(c.DataDir, "progress.db")
}

// ExportDir returns the directory for JSON exports.
func (c *LiteConfig) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.ExportDir(), 0755)
}
