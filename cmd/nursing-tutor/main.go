// Package main provides the entry point for the Nursing Tutor MCP Server.
// The server requires no external databases - it uses in-memory caching
// and a single-file SQLite database for learner progress.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nursing-tutor-mcp-server/internal/config"
	"github.com/nursing-tutor-mcp-server/internal/mcp"
	"github.com/nursing-tutor-mcp-server/internal/setup"
)

func main() {
	// Check for setup subcommand
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		cli := setup.NewCLI()
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	// Load configuration: yaml file via viper when present, then
	// environment variables on top.
	cfg := loadConfig()

	log.Printf("Starting Nursing Tutor MCP Server with transport: %s", cfg.Transport)
	log.Printf("Data directory: %s", cfg.DataDir)

	// Create lite MCP server
	server, err := mcp.NewLiteServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	defer server.Close()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start MCP server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}

	log.Println("Nursing Tutor MCP Server stopped")
}

// loadConfig layers the file-based configuration under the env-driven
// lite configuration. A missing or invalid config file is not fatal;
// the env defaults stand on their own.
func loadConfig() *config.LiteConfig {
	cfg := config.DefaultLiteConfig()

	if manager, err := config.NewManager(); err == nil {
		if err := manager.Validate(); err != nil {
			log.Printf("Ignoring config file: %v", err)
		} else {
			full := manager.GetConfig()
			if full.Obsidian.VaultPath != "" {
				cfg.VaultPath = full.Obsidian.VaultPath
			}
			if full.Cache.MaxItems > 0 {
				cfg.CacheMaxItems = full.Cache.MaxItems
			}
			if full.Cache.DefaultTTL > 0 {
				cfg.CacheTTL = full.Cache.DefaultTTL
			}
			if full.MCP.TransportType != "" {
				cfg.Transport = full.MCP.TransportType
			}
			if full.MCP.HTTPPort > 0 {
				cfg.HTTPPort = full.MCP.HTTPPort
			}
			if full.Logging.Level != "" {
				cfg.LogLevel = full.Logging.Level
			}
			if full.Logging.Format != "" {
				cfg.LogFormat = full.Logging.Format
			}
		}
	}

	return config.ApplyEnv(cfg)
}
