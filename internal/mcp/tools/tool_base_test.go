package tools

import (
	"errors"
	"strings"
	"testing"

	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
)

func TestParseParams(t *testing.T) {
	type target struct {
		Topic string   `json:"topic"`
		Tags  []string `json:"tags,omitempty"`
	}

	t.Run("Nil_Params", func(t *testing.T) {
		var out target
		err := ParseParams(nil, &out)
		if err == nil {
			t.Fatal("expected error for nil params")
		}
		if err.Error() != "missing required parameters" {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("Map_To_Struct", func(t *testing.T) {
		var out target
		err := ParseParams(map[string]interface{}{
			"topic": "통증관리",
			"tags":  []string{"oncology", "pain"},
		}, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Topic != "통증관리" {
			t.Errorf("topic = %q", out.Topic)
		}
		if len(out.Tags) != 2 {
			t.Errorf("tags = %v", out.Tags)
		}
	})

	t.Run("Unknown_Fields_Ignored", func(t *testing.T) {
		var out target
		err := ParseParams(map[string]interface{}{
			"topic":  "통증관리",
			"extras": 42,
		}, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Topic != "통증관리" {
			t.Errorf("topic = %q", out.Topic)
		}
	})

	t.Run("Type_Mismatch", func(t *testing.T) {
		var out target
		err := ParseParams(map[string]interface{}{"topic": 3}, &out)
		if err == nil {
			t.Fatal("expected error for mismatched field type")
		}
		if !strings.Contains(err.Error(), "failed to parse parameters") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("Unmarshalable_Params", func(t *testing.T) {
		var out target
		err := ParseParams(map[string]interface{}{"topic": make(chan int)}, &out)
		if err == nil {
			t.Fatal("expected error for unmarshalable params")
		}
		if !strings.Contains(err.Error(), "failed to marshal parameters") {
			t.Errorf("unexpected error message: %v", err)
		}
	})
}

func TestTextResponse(t *testing.T) {
	resp := textResponse("# 제목\n본문")

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content shape %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type = %v", content[0]["type"])
	}
	if content[0]["text"] != "# 제목\n본문" {
		t.Errorf("content text = %v", content[0]["text"])
	}
}

func TestInvalidParamsResponse(t *testing.T) {
	resp := invalidParamsResponse(errors.New("topic is required"))

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != protocol.InvalidParams {
		t.Errorf("code = %d", resp.Error.Code)
	}
	if resp.Error.Message != "Invalid parameters" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if resp.Error.Data != "topic is required" {
		t.Errorf("data = %v", resp.Error.Data)
	}
}

func TestToolErrorResponse(t *testing.T) {
	resp := toolErrorResponse("Knowledge query failed", errors.New("registry unavailable"))

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != protocol.MCPToolError {
		t.Errorf("code = %d", resp.Error.Code)
	}
	if resp.Error.Message != "Knowledge query failed" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if resp.Error.Data != "registry unavailable" {
		t.Errorf("data = %v", resp.Error.Data)
	}
}
