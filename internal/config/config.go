package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// Manager implements configuration loading on top of Viper.
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/nursing-tutor-mcp-server/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("NURSING_TUTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.name", "nursing-tutor-mcp")
	viper.SetDefault("server.version", "2.0.0")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Language defaults
	viper.SetDefault("language.primary", "ko-KR")
	viper.SetDefault("language.secondary", "en-US")

	// Obsidian integration defaults
	viper.SetDefault("obsidian.vault_path", "")
	viper.SetDefault("obsidian.auto_tag", true)
	viper.SetDefault("obsidian.link_format", "wiki")

	// Clinical support defaults
	viper.SetDefault("clinical.critical_value_alerts", true)
	viper.SetDefault("clinical.include_references", true)
	viper.SetDefault("clinical.evidence_levels", []string{"systematic_review", "rct", "case_study"})

	// Education defaults
	viper.SetDefault("education.include_rationales", true)
	viper.SetDefault("education.track_progress", true)

	// Cache defaults
	viper.SetDefault("cache.max_items", 1000)
	viper.SetDefault("cache.default_ttl", "1h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetObsidianConfig returns note integration configuration
func (m *Manager) GetObsidianConfig() *domain.ObsidianConfig {
	return &m.config.Obsidian
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate server configuration
	if config.Server.Name == "" {
		return fmt.Errorf("server name is required")
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// Validate language settings
	validLanguages := map[string]bool{"ko-KR": true, "en-US": true}
	if !validLanguages[config.Language.Primary] {
		return fmt.Errorf("invalid primary language: %s", config.Language.Primary)
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
