package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/mcp/tools"
	"github.com/nursing-tutor-mcp-server/internal/mcp/transport"
)

// MCPTransportBridge adapts our transport interface to the MCP SDK
// Transport. Connecting registers a session and a rate limiter client
// keyed by the generated session id; both are torn down on Close.
type MCPTransportBridge struct {
	customTransport transport.Transport
	sessions        *protocol.SessionManager
	rateLimiter     *protocol.RateLimiter
	logger          *logrus.Logger
}

// NewMCPTransportBridge creates a new transport bridge.
func NewMCPTransportBridge(customTransport transport.Transport, sessions *protocol.SessionManager, rateLimiter *protocol.RateLimiter, logger *logrus.Logger) mcp.Transport {
	return &MCPTransportBridge{
		customTransport: customTransport,
		sessions:        sessions,
		rateLimiter:     rateLimiter,
		logger:          logger,
	}
}

// Connect implements mcp.Transport. The SDK server calls it exactly
// once per Run; the underlying transport must already be started by
// the transport manager.
func (b *MCPTransportBridge) Connect(ctx context.Context) (mcp.Connection, error) {
	b.logger.Info("Starting transport bridge")

	if b.customTransport.IsClosed() {
		return nil, fmt.Errorf("transport is closed")
	}

	sessionID := uuid.New().String()
	if b.sessions != nil {
		if err := b.sessions.CreateSession(sessionID, map[string]interface{}{
			"transport": b.customTransport.GetType(),
		}); err != nil {
			b.logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to register session")
		}
	}
	if b.rateLimiter != nil {
		b.rateLimiter.InitializeClient(sessionID)
	}

	b.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"transport":  b.customTransport.GetType(),
	}).Debug("Transport bridge connected")

	return &bridgeConnection{
		transport:   b.customTransport,
		sessions:    b.sessions,
		rateLimiter: b.rateLimiter,
		sessionID:   sessionID,
		logger:      b.logger,
	}, nil
}

// bridgeConnection is the logical JSON-RPC connection over our
// transport, one per Connect.
type bridgeConnection struct {
	transport   transport.Transport
	sessions    *protocol.SessionManager
	rateLimiter *protocol.RateLimiter
	sessionID   string
	logger      *logrus.Logger
}

// Read implements mcp.Connection.
func (c *bridgeConnection) Read(ctx context.Context) (jsonrpc.Message, error) {
	data, err := c.transport.ReadMessage()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	if len(data) == 0 {
		return nil, io.EOF
	}

	msg, err := jsonrpc.DecodeMessage(data)
	if err != nil {
		c.logger.WithError(err).WithField("data", string(data)).Error("Failed to decode JSON-RPC message")
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	if c.sessions != nil {
		c.sessions.UpdateClientActivity(c.sessionID)
	}
	return msg, nil
}

// Write implements mcp.Connection.
func (c *bridgeConnection) Write(ctx context.Context, msg jsonrpc.Message) error {
	data, err := jsonrpc.EncodeMessage(msg)
	if err != nil {
		c.logger.WithError(err).Error("Failed to encode JSON-RPC message")
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return c.transport.WriteMessage(data)
}

// Close implements mcp.Connection. It drops the session and rate
// limiter state before closing the underlying transport.
func (c *bridgeConnection) Close() error {
	c.logger.WithField("session_id", c.sessionID).Debug("Closing transport bridge connection")

	if c.sessions != nil {
		c.sessions.RemoveSession(c.sessionID)
	}
	if c.rateLimiter != nil {
		c.rateLimiter.RemoveClient(c.sessionID)
	}
	return c.transport.Close()
}

// SessionID implements mcp.Connection.
func (c *bridgeConnection) SessionID() string {
	return c.sessionID
}

// NewMCPToolHandler routes MCP SDK tool calls for toolName into the
// internal tool registry. Each call is rate limited per session.
func NewMCPToolHandler(toolRegistry *tools.ToolRegistry, toolName string, rateLimiter *protocol.RateLimiter, logger *logrus.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger.WithField("tool", toolName).Debug("Handling MCP tool call")

		sessionID := "local"
		if req.Session != nil && req.Session.ID() != "" {
			sessionID = req.Session.ID()
		}
		if rateLimiter != nil && !rateLimiter.AllowRequest(sessionID) {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{
					Text: "요청이 너무 많습니다. 잠시 후 다시 시도하세요.",
				}},
			}, nil
		}

		params, err := toolCallParams(req)
		if err != nil {
			return nil, err
		}

		response := toolRegistry.ExecuteTool(ctx, &protocol.JSONRPC2Request{
			JSONRPC: "2.0",
			Method:  toolName,
			Params:  params,
		})

		if response.Error != nil {
			text := response.Error.Message
			if detail, ok := response.Error.Data.(string); ok && detail != "" {
				text = fmt.Sprintf("%s: %s", text, detail)
			}
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: text}},
			}, nil
		}

		return toCallToolResult(response.Result)
	}
}

// toolCallParams extracts the tool arguments from an SDK request. The
// SDK delays unmarshaling on the server side, so arguments usually
// arrive as json.RawMessage.
func toolCallParams(req *mcp.CallToolRequest) (interface{}, error) {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return nil, nil
	}

	if raw, ok := req.Params.Arguments.(json.RawMessage); ok {
		if len(raw) == 0 {
			return nil, nil
		}
		var params map[string]interface{}
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
		}
		return params, nil
	}
	return req.Params.Arguments, nil
}

// toCallToolResult converts an internal tool result (the MCP text
// content map shape) into the SDK result type.
func toCallToolResult(result interface{}) (*mcp.CallToolResult, error) {
	if resultMap, ok := result.(map[string]interface{}); ok {
		if entries, ok := resultMap["content"].([]map[string]interface{}); ok {
			content := make([]mcp.Content, 0, len(entries))
			for _, entry := range entries {
				if text, ok := entry["text"].(string); ok {
					content = append(content, &mcp.TextContent{Text: text})
				}
			}
			if len(content) > 0 {
				return &mcp.CallToolResult{Content: content}, nil
			}
		}
	}

	// Fallback for results outside the text content shape.
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
