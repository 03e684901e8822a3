package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/mcp/tools"
	"github.com/nursing-tutor-mcp-server/internal/registry"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// fakeTransport queues inbound frames and records outbound ones.
type fakeTransport struct {
	incoming [][]byte
	written  [][]byte
	closed   bool
}

func (f *fakeTransport) Start(ctx context.Context) error { return nil }

func (f *fakeTransport) ReadMessage() ([]byte, error) {
	if len(f.incoming) == 0 {
		return nil, io.EOF
	}
	msg := f.incoming[0]
	f.incoming = f.incoming[1:]
	return msg, nil
}

func (f *fakeTransport) WriteMessage(message []byte) error {
	f.written = append(f.written, message)
	return nil
}

func (f *fakeTransport) WriteJSONMessage(obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return f.WriteMessage(data)
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func (f *fakeTransport) IsClosed() bool { return f.closed }

func (f *fakeTransport) GetType() string { return "stdio" }

func TestTransportBridge(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx := context.Background()

	t.Run("Connect_Registers_Session", func(t *testing.T) {
		ft := &fakeTransport{}
		sessions := protocol.NewSessionManager(logger)
		rateLimiter := protocol.NewRateLimiter(logger)
		bridge := NewMCPTransportBridge(ft, sessions, rateLimiter, logger)

		conn, err := bridge.Connect(ctx)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		if conn.SessionID() == "" {
			t.Error("expected a generated session id")
		}
		if sessions.GetSessionCount() != 1 {
			t.Errorf("expected 1 session, got %d", sessions.GetSessionCount())
		}
		if _, ok := sessions.GetSession(conn.SessionID()); !ok {
			t.Error("session not registered")
		}
		if rateLimiter.GetClientStats(conn.SessionID()) == nil {
			t.Error("rate limiter client not initialized")
		}
	})

	t.Run("Connect_Closed_Transport", func(t *testing.T) {
		ft := &fakeTransport{closed: true}
		bridge := NewMCPTransportBridge(ft, nil, nil, logger)

		if _, err := bridge.Connect(ctx); err == nil {
			t.Fatal("expected an error for a closed transport")
		}
	})

	t.Run("Read_Decodes_Messages", func(t *testing.T) {
		ft := &fakeTransport{incoming: [][]byte{
			[]byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`),
		}}
		bridge := NewMCPTransportBridge(ft, nil, nil, logger)
		conn, err := bridge.Connect(ctx)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}

		msg, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		req, ok := msg.(*jsonrpc.Request)
		if !ok {
			t.Fatalf("expected a request, got %T", msg)
		}
		if req.Method != "ping" {
			t.Errorf("unexpected method %q", req.Method)
		}

		// A drained transport reports end of stream.
		if _, err := conn.Read(ctx); err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})

	t.Run("Write_Encodes_Messages", func(t *testing.T) {
		ft := &fakeTransport{}
		bridge := NewMCPTransportBridge(ft, nil, nil, logger)
		conn, err := bridge.Connect(ctx)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}

		id, err := jsonrpc.MakeID("req-1")
		if err != nil {
			t.Fatalf("MakeID failed: %v", err)
		}
		if err := conn.Write(ctx, &jsonrpc.Request{ID: id, Method: "ping"}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if len(ft.written) != 1 {
			t.Fatalf("expected 1 written frame, got %d", len(ft.written))
		}
		if !strings.Contains(string(ft.written[0]), `"method":"ping"`) {
			t.Errorf("frame missing method: %s", ft.written[0])
		}
	})

	t.Run("Close_Tears_Down", func(t *testing.T) {
		ft := &fakeTransport{}
		sessions := protocol.NewSessionManager(logger)
		rateLimiter := protocol.NewRateLimiter(logger)
		bridge := NewMCPTransportBridge(ft, sessions, rateLimiter, logger)

		conn, err := bridge.Connect(ctx)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		sessionID := conn.SessionID()

		if err := conn.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if sessions.GetSessionCount() != 0 {
			t.Errorf("session not removed, %d remain", sessions.GetSessionCount())
		}
		if rateLimiter.GetClientStats(sessionID) != nil {
			t.Error("rate limiter client not removed")
		}
		if !ft.closed {
			t.Error("underlying transport not closed")
		}
	})
}

func newBridgeToolRegistry(t *testing.T) *tools.ToolRegistry {
	t.Helper()
	logger, _ := test.NewNullLogger()
	router := protocol.NewMessageRouter(logger)

	reg := tools.NewToolRegistry(logger, router, tools.Services{
		Knowledge: service.NewKnowledgeService(
			logger,
			registry.NewMedicationRegistry(),
			registry.NewLabValueRegistry(),
			registry.NewDiagnosisRegistry(),
			registry.NewProtocolRegistry(),
			registry.NewKnowledgeStore(),
		),
		Cases: service.NewCaseAnalyzer(
			logger,
			registry.NewMedicationRegistry(),
			registry.NewLabValueRegistry(),
			registry.NewDiagnosisRegistry(),
		),
		CarePlans: service.NewCarePlanComposer(logger),
		Notes:     service.NewNoteComposer(logger, t.TempDir()),
		Research:  service.NewResearchService(logger),
	})
	if err := reg.RegisterAllTools(); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}
	return reg
}

func TestMCPToolHandler(t *testing.T) {
	logger, _ := test.NewNullLogger()
	reg := newBridgeToolRegistry(t)
	ctx := context.Background()

	t.Run("Raw_Arguments", func(t *testing.T) {
		handler := NewMCPToolHandler(reg, "get_nursing_knowledge", nil, logger)

		result, err := handler(ctx, &sdkmcp.CallToolRequest{
			Params: &sdkmcp.CallToolParams{
				Name:      "get_nursing_knowledge",
				Arguments: json.RawMessage(`{"topic":"종양간호","level":"basic"}`),
			},
		})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected error result: %v", result.Content)
		}
		text, ok := result.Content[0].(*sdkmcp.TextContent)
		if !ok || text.Text == "" {
			t.Fatalf("expected text content, got %v", result.Content)
		}
	})

	t.Run("Invalid_Params", func(t *testing.T) {
		handler := NewMCPToolHandler(reg, "get_nursing_knowledge", nil, logger)

		result, err := handler(ctx, &sdkmcp.CallToolRequest{
			Params: &sdkmcp.CallToolParams{
				Name:      "get_nursing_knowledge",
				Arguments: json.RawMessage(`{}`),
			},
		})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected an error result for missing topic")
		}
		text := result.Content[0].(*sdkmcp.TextContent)
		if !strings.Contains(text.Text, "Invalid parameters") {
			t.Errorf("unexpected error text %q", text.Text)
		}
	})

	t.Run("Rate_Limited", func(t *testing.T) {
		rateLimiter := protocol.NewRateLimiter(logger)
		rateLimiter.InitializeClient("local")

		// Exhaust the burst allowance before calling the handler.
		denied := false
		for i := 0; i < 100; i++ {
			if !rateLimiter.AllowRequest("local") {
				denied = true
				break
			}
		}
		if !denied {
			t.Fatal("rate limiter never denied a burst")
		}

		handler := NewMCPToolHandler(reg, "get_nursing_knowledge", rateLimiter, logger)
		result, err := handler(ctx, &sdkmcp.CallToolRequest{
			Params: &sdkmcp.CallToolParams{
				Name:      "get_nursing_knowledge",
				Arguments: json.RawMessage(`{"topic":"종양간호"}`),
			},
		})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected a rate-limit error result")
		}
		text := result.Content[0].(*sdkmcp.TextContent)
		if !strings.Contains(text.Text, "요청이 너무 많습니다") {
			t.Errorf("unexpected rate-limit text %q", text.Text)
		}
	})
}

func TestToSDKSchema(t *testing.T) {
	schema, err := toSDKSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"topic": map[string]interface{}{"type": "string"},
		},
		"required": []string{"topic"},
	})
	if err != nil {
		t.Fatalf("toSDKSchema failed: %v", err)
	}
	if schema.Type != "object" {
		t.Errorf("unexpected schema type %q", schema.Type)
	}
	if _, ok := schema.Properties["topic"]; !ok {
		t.Error("schema lost the topic property")
	}
}
