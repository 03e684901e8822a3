package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Language  LanguageConfig  `mapstructure:"language"`
	Obsidian  ObsidianConfig  `mapstructure:"obsidian"`
	Clinical  ClinicalConfig  `mapstructure:"clinical"`
	Education EducationConfig `mapstructure:"education"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	MCP       MCPConfig       `mapstructure:"mcp"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Name         string        `mapstructure:"name"`
	Version      string        `mapstructure:"version"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LanguageConfig represents localization settings
type LanguageConfig struct {
	Primary   string `mapstructure:"primary"`   // ko-KR
	Secondary string `mapstructure:"secondary"` // en-US
}

// ObsidianConfig represents the note vault integration settings
type ObsidianConfig struct {
	VaultPath  string `mapstructure:"vault_path"`
	AutoTag    bool   `mapstructure:"auto_tag"`
	LinkFormat string `mapstructure:"link_format"` // "wiki" or "markdown"
}

// ClinicalConfig represents clinical decision support settings
type ClinicalConfig struct {
	CriticalValueAlerts bool     `mapstructure:"critical_value_alerts"`
	IncludeReferences   bool     `mapstructure:"include_references"`
	EvidenceLevels      []string `mapstructure:"evidence_levels"`
}

// EducationConfig represents educational feature settings
type EducationConfig struct {
	IncludeRationales bool `mapstructure:"include_rationales"`
	TrackProgress     bool `mapstructure:"track_progress"`
}

// CacheConfig represents in-memory cache configuration
type CacheConfig struct {
	MaxItems   int           `mapstructure:"max_items"`
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MCPConfig represents MCP server configuration
type MCPConfig struct {
	ServerName     string        `mapstructure:"server_name"`
	ServerVersion  string        `mapstructure:"server_version"`
	TransportType  string        `mapstructure:"transport_type"` // "stdio", "http"
	HTTPPort       int           `mapstructure:"http_port"`
	HTTPHost       string        `mapstructure:"http_host"`
	MaxClients     int           `mapstructure:"max_clients"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}
