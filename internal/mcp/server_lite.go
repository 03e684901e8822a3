// Package mcp provides the MCP server implementation.
// This file contains the lightweight server that requires no external databases.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/cache"
	litecfg "github.com/nursing-tutor-mcp-server/internal/config"
	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/mcp/tools"
	"github.com/nursing-tutor-mcp-server/internal/mcp/transport"
	"github.com/nursing-tutor-mcp-server/internal/progress"
	"github.com/nursing-tutor-mcp-server/internal/registry"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// LiteServer is a lightweight MCP server that requires no external databases.
// It uses in-memory caching and SQLite for learner-progress persistence.
type LiteServer struct {
	config          *litecfg.LiteConfig
	mcpServer       *mcp.Server
	transportMgr    *transport.Manager
	activeTransport transport.Transport
	toolRegistry    *tools.ToolRegistry
	progressStore   progress.Store
	cache           *cache.MemoryCache
	sessions        *protocol.SessionManager
	rateLimiter     *protocol.RateLimiter
	logger          *logrus.Logger
}

// LiteServerOption is a functional option for LiteServer.
type LiteServerOption func(*LiteServer) error

// WithProgressStore sets a custom progress store.
func WithProgressStore(store progress.Store) LiteServerOption {
	return func(s *LiteServer) error {
		s.progressStore = store
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) LiteServerOption {
	return func(s *LiteServer) error {
		s.logger = logger
		return nil
	}
}

// NewLiteServer creates a new lightweight MCP server instance.
// It requires no external databases - uses in-memory cache and SQLite.
func NewLiteServer(cfg *litecfg.LiteConfig, opts ...LiteServerOption) (*LiteServer, error) {
	// Create server with default logger
	server := &LiteServer{
		config: cfg,
		logger: logrus.New(),
	}

	// Configure default logger
	if cfg.LogFormat == "text" {
		server.logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		server.logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	server.logger.SetLevel(level)

	// Apply options
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// Ensure data directory exists
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Initialize memory cache
	memCache, err := cache.NewMemoryCache(cfg.CacheMaxItems, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	server.cache = memCache

	// Initialize progress store if not provided
	if server.progressStore == nil {
		store, err := progress.NewSQLiteStore(cfg.ProgressDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to create progress store: %w", err)
		}
		server.progressStore = store
	}

	// Create MCP configuration for transport
	mcpConfig := &domain.MCPConfig{
		TransportType: cfg.Transport,
		HTTPPort:      cfg.HTTPPort,
	}

	// Create transport manager, message router and the session-scoped
	// request guards
	transportMgr := transport.NewManager(server.logger, mcpConfig)
	router := protocol.NewMessageRouter(server.logger)
	server.sessions = protocol.NewSessionManager(server.logger)
	server.rateLimiter = protocol.NewRateLimiter(server.logger)

	// Build reference registries. Constructed once, shared read-only
	// by every service.
	medications := registry.NewMedicationRegistry()
	labValues := registry.NewLabValueRegistry()
	diagnoses := registry.NewDiagnosisRegistry()
	protocols := registry.NewProtocolRegistry()
	knowledgeStore := registry.NewKnowledgeStore()

	// Build domain services
	knowledgeService := service.NewKnowledgeService(server.logger, medications, labValues, diagnoses, protocols, knowledgeStore)
	caseAnalyzer := service.NewCaseAnalyzer(server.logger, medications, labValues, diagnoses)
	carePlanComposer := service.NewCarePlanComposer(server.logger)
	noteComposer := service.NewNoteComposer(server.logger, cfg.VaultPath)
	researchService := service.NewResearchService(server.logger)

	// Build the learner progress subsystem
	tracker := progress.NewTracker(server.logger, server.progressStore)
	analyzer := progress.NewAnalyzer(server.logger)
	profiles := progress.NewProfileManager(server.logger)
	paths := progress.NewPathEngine(server.logger)

	// Create tool registry and register tools
	toolRegistry := tools.NewToolRegistry(server.logger, router, tools.Services{
		Knowledge: knowledgeService,
		Cases:     caseAnalyzer,
		CarePlans: carePlanComposer,
		Notes:     noteComposer,
		Research:  researchService,
		Tracker:   tracker,
		Analyzer:  analyzer,
		Profiles:  profiles,
		Paths:     paths,
	})
	if err := toolRegistry.RegisterAllTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	toolRegistry.SetResultCache(server.cache)

	// Validate all tools
	if err := toolRegistry.ValidateAllTools(); err != nil {
		return nil, fmt.Errorf("tool validation failed: %w", err)
	}

	// Create server info
	serverInfo := &mcp.Implementation{
		Name:    "nursing-tutor-mcp-server",
		Version: "v0.1.0",
	}

	// Create MCP server
	mcpServer := mcp.NewServer(serverInfo, nil)

	// Complete server setup
	server.mcpServer = mcpServer
	server.transportMgr = transportMgr
	server.toolRegistry = toolRegistry

	// Register MCP tools
	if err := server.registerMCPTools(mcpServer, toolRegistry); err != nil {
		return nil, fmt.Errorf("failed to register MCP tools: %w", err)
	}

	server.logger.Info("Lite server initialized successfully")
	return server, nil
}

// registerMCPTools registers tools with the MCP SDK.
func (s *LiteServer) registerMCPTools(mcpServer *mcp.Server, toolRegistry *tools.ToolRegistry) error {
	s.logger.Info("Registering tools with MCP SDK...")

	toolsInfo := toolRegistry.GetRegisteredToolsInfo()

	for _, toolInfo := range toolsInfo {
		schema, err := toSDKSchema(toolInfo.InputSchema)
		if err != nil {
			return fmt.Errorf("invalid input schema for tool %s: %w", toolInfo.Name, err)
		}

		toolDef := &mcp.Tool{
			Name:        toolInfo.Name,
			Description: toolInfo.Description,
			InputSchema: schema,
		}

		handler := NewMCPToolHandler(toolRegistry, toolInfo.Name, s.rateLimiter, s.logger)
		mcpServer.AddTool(toolDef, handler)

		s.logger.WithField("tool_name", toolInfo.Name).Debug("Registered MCP tool")
	}

	s.logger.WithField("tool_count", len(toolsInfo)).Info("Successfully registered all tools")
	return nil
}

// toSDKSchema converts a tool's map-shaped JSON schema into the SDK's
// schema type.
func toSDKSchema(inputSchema map[string]interface{}) (*jsonschema.Schema, error) {
	data, err := json.Marshal(inputSchema)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Start starts the lite MCP server.
func (s *LiteServer) Start(ctx context.Context) error {
	s.logger.Info("Starting Nursing Tutor MCP Server (Lite)...")

	// Start transport
	activeTransport, err := s.transportMgr.StartTransport(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.activeTransport = activeTransport
	s.logger.WithField("transport_type", activeTransport.GetType()).Info("Transport initialized")

	// Create bridge between transport and MCP SDK
	mcpTransport := NewMCPTransportBridge(activeTransport, s.sessions, s.rateLimiter, s.logger)

	// Run the MCP server
	if err := s.mcpServer.Run(ctx, mcpTransport); err != nil {
		s.activeTransport.Close()
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

// Close cleans up server resources.
func (s *LiteServer) Close() error {
	if s.progressStore != nil {
		if err := s.progressStore.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close progress store")
		}
	}
	if s.activeTransport != nil {
		s.activeTransport.Close()
	}
	return nil
}

// GetProgressStore returns the progress store for external access.
func (s *LiteServer) GetProgressStore() progress.Store {
	return s.progressStore
}

// GetCache returns the memory cache for external access.
func (s *LiteServer) GetCache() *cache.MemoryCache {
	return s.cache
}
