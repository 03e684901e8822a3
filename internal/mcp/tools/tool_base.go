package tools

import (
	"encoding/json"
	"fmt"

	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
)

// ParseParams parses and validates generic parameters from interface{} to a target struct.
// This eliminates the duplicate marshal/unmarshal pattern found across all tool handlers.
//
// Usage:
//
//	var params MyParams
//	if err := ParseParams(req.Params, &params); err != nil {
//	    return invalidParamsResponse(err)
//	}
func ParseParams(params interface{}, target interface{}) error {
	if params == nil {
		return fmt.Errorf("missing required parameters")
	}

	paramsBytes, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}

	if err := json.Unmarshal(paramsBytes, target); err != nil {
		return fmt.Errorf("failed to parse parameters: %w", err)
	}

	return nil
}

// textResponse wraps rendered markdown in the MCP text content shape.
func textResponse(text string) *protocol.JSONRPC2Response {
	return &protocol.JSONRPC2Response{
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": text},
			},
		},
	}
}

// invalidParamsResponse reports a parameter validation failure at the
// tool boundary.
func invalidParamsResponse(err error) *protocol.JSONRPC2Response {
	return &protocol.JSONRPC2Response{
		Error: &protocol.RPCError{
			Code:    protocol.InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		},
	}
}

// toolErrorResponse reports a failure inside the tool itself.
func toolErrorResponse(message string, err error) *protocol.JSONRPC2Response {
	return &protocol.JSONRPC2Response{
		Error: &protocol.RPCError{
			Code:    protocol.MCPToolError,
			Message: message,
			Data:    err.Error(),
		},
	}
}
