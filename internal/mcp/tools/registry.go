package tools

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/cache"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/progress"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// cacheableTools are the read-only tools whose output depends only on
// the immutable catalogs, so identical calls can reuse a composed
// result. Tools that write notes or mutate learner progress are never
// cached.
var cacheableTools = map[string]bool{
	"get_nursing_knowledge": true,
	"analyze_clinical_case": true,
	"generate_care_plan":    true,
	"research_assistant":    true,
}

// Services bundles the domain components the tool layer exposes.
type Services struct {
	Knowledge *service.KnowledgeService
	Cases     *service.CaseAnalyzer
	CarePlans *service.CarePlanComposer
	Notes     *service.NoteComposer
	Research  *service.ResearchService
	Tracker   *progress.Tracker
	Analyzer  *progress.Analyzer
	Profiles  *progress.ProfileManager
	Paths     *progress.PathEngine
}

// ToolRegistry manages registration of all MCP tools
type ToolRegistry struct {
	logger      *logrus.Logger
	router      *protocol.MessageRouter
	services    Services
	resultCache *cache.MemoryCache
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(logger *logrus.Logger, router *protocol.MessageRouter, services Services) *ToolRegistry {
	return &ToolRegistry{
		logger:   logger,
		router:   router,
		services: services,
	}
}

// SetResultCache enables caching of composed results for the read-only
// tools.
func (tr *ToolRegistry) SetResultCache(resultCache *cache.MemoryCache) {
	tr.resultCache = resultCache
}

// RegisterAllTools registers all nursing tutor tools with the MCP router
func (tr *ToolRegistry) RegisterAllTools() error {
	tr.logger.Info("Registering nursing tutor tools")

	knowledgeTool := NewNursingKnowledgeTool(tr.logger, tr.services.Knowledge)
	tr.router.RegisterToolHandler("get_nursing_knowledge", knowledgeTool)
	tr.logger.Debug("Registered get_nursing_knowledge tool")

	caseTool := NewClinicalCaseTool(tr.logger, tr.services.Cases)
	tr.router.RegisterToolHandler("analyze_clinical_case", caseTool)
	tr.logger.Debug("Registered analyze_clinical_case tool")

	carePlanTool := NewCarePlanTool(tr.logger, tr.services.CarePlans)
	tr.router.RegisterToolHandler("generate_care_plan", carePlanTool)
	tr.logger.Debug("Registered generate_care_plan tool")

	noteTool := NewObsidianNoteTool(tr.logger, tr.services.Notes)
	tr.router.RegisterToolHandler("obsidian_integration", noteTool)
	tr.logger.Debug("Registered obsidian_integration tool")

	researchTool := NewResearchAssistantTool(tr.logger, tr.services.Research)
	tr.router.RegisterToolHandler("research_assistant", researchTool)
	tr.logger.Debug("Registered research_assistant tool")

	sessionTool := NewStudySessionTool(tr.logger, tr.services.Tracker)
	tr.router.RegisterToolHandler("record_study_session", sessionTool)
	tr.logger.Debug("Registered record_study_session tool")

	progressTool := NewLearningProgressTool(tr.logger, tr.services.Tracker, tr.services.Analyzer, tr.services.Profiles, tr.services.Paths)
	tr.router.RegisterToolHandler("get_learning_progress", progressTool)
	tr.logger.Debug("Registered get_learning_progress tool")

	tr.logger.Info("Successfully registered all nursing tutor tools")
	return nil
}

// ExecuteTool routes a tool call request to its registered handler.
// Successful results of read-only tools are served from the result
// cache when one is configured.
func (tr *ToolRegistry) ExecuteTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	handler, exists := tr.router.GetToolHandler(req.Method)
	if !exists {
		tr.logger.WithField("tool", req.Method).Warn("Unknown tool requested")
		return &protocol.JSONRPC2Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &protocol.RPCError{
				Code:    protocol.MethodNotFound,
				Message: "Tool not found",
				Data:    req.Method,
			},
		}
	}

	cacheKey := tr.resultCacheKey(req)
	if cacheKey != "" {
		if cached, ok := tr.resultCache.Get(cacheKey); ok {
			tr.logger.WithField("tool", req.Method).Debug("Serving tool result from cache")
			return &protocol.JSONRPC2Response{
				JSONRPC: "2.0",
				ID:      req.ID,
				Result:  cached,
			}
		}
	}

	response := handler.HandleTool(ctx, req)

	if cacheKey != "" && response.Error == nil {
		tr.resultCache.Set(cacheKey, response.Result)
	}
	return response
}

// resultCacheKey returns the cache key for a request, or "" when the
// call must not be cached. Map keys marshal in sorted order, so
// equivalent params always produce the same key.
func (tr *ToolRegistry) resultCacheKey(req *protocol.JSONRPC2Request) string {
	if tr.resultCache == nil || !cacheableTools[req.Method] {
		return ""
	}
	params, err := json.Marshal(req.Params)
	if err != nil {
		return ""
	}
	return req.Method + ":" + string(params)
}

// GetRegisteredToolsInfo returns information about all registered tools
func (tr *ToolRegistry) GetRegisteredToolsInfo() []protocol.ToolInfo {
	toolHandlers := tr.router.GetToolHandlers()
	toolsInfo := make([]protocol.ToolInfo, 0, len(toolHandlers))

	for _, handler := range toolHandlers {
		toolsInfo = append(toolsInfo, handler.GetToolInfo())
	}

	return toolsInfo
}

// ValidateAllTools validates all registered tools can handle their schemas
func (tr *ToolRegistry) ValidateAllTools() error {
	tr.logger.Info("Validating all registered tools")

	toolHandlers := tr.router.GetToolHandlers()

	for name, handler := range toolHandlers {
		tr.logger.WithField("tool", name).Debug("Validating tool")

		toolInfo := handler.GetToolInfo()
		if toolInfo.Name == "" {
			tr.logger.WithField("tool", name).Error("Tool missing name")
			continue
		}

		if toolInfo.Description == "" {
			tr.logger.WithField("tool", name).Warn("Tool missing description")
		}

		if toolInfo.InputSchema == nil {
			tr.logger.WithField("tool", name).Warn("Tool missing input schema")
		}

		tr.logger.WithField("tool", name).Debug("Tool validation completed")
	}

	tr.logger.Info("Tool validation completed")
	return nil
}
