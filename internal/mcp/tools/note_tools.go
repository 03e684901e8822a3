package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// ObsidianNoteTool implements the obsidian_integration MCP tool.
type ObsidianNoteTool struct {
	logger   *logrus.Logger
	composer *service.NoteComposer
}

// ObsidianNoteParams defines parameters for the obsidian_integration tool.
type ObsidianNoteParams struct {
	NoteType string   `json:"note_type" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags,omitempty"`
}

// NewObsidianNoteTool creates a new obsidian_integration tool.
func NewObsidianNoteTool(logger *logrus.Logger, composer *service.NoteComposer) *ObsidianNoteTool {
	return &ObsidianNoteTool{
		logger:   logger,
		composer: composer,
	}
}

// HandleTool implements the ToolHandler interface for obsidian_integration.
func (t *ObsidianNoteTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "obsidian_integration").Info("Processing note creation")

	var params ObsidianNoteParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	note, err := t.composer.Compose(ctx, domain.NoteType(params.NoteType), params.Content, params.Tags)
	if err != nil {
		return toolErrorResponse("Note creation failed", err)
	}

	t.logger.WithFields(logrus.Fields{
		"note_type": note.Type,
		"filename":  note.Filename,
		"fallback":  note.Warning != "",
	}).Info("Note created")

	return textResponse(renderNoteResult(note))
}

// GetToolInfo returns tool metadata.
func (t *ObsidianNoteTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "obsidian_integration",
		Description: "옵시디언 노트 생성 및 연동",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"note_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"daily", "concept", "case_study"},
					"description": "노트 유형",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "노트 내용",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "태그 목록",
				},
			},
			"required": []string{"note_type", "content"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *ObsidianNoteTool) ValidateParams(params interface{}) error {
	var noteParams ObsidianNoteParams
	return t.parseAndValidateParams(params, &noteParams)
}

func (t *ObsidianNoteTool) parseAndValidateParams(params interface{}, target *ObsidianNoteParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	switch domain.NoteType(target.NoteType) {
	case domain.NoteDaily, domain.NoteConcept, domain.NoteCaseStudy:
	default:
		return fmt.Errorf("note_type must be one of daily, concept, case_study")
	}
	if target.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

func renderNoteResult(note *domain.Note) string {
	var b strings.Builder

	b.WriteString("✅ 옵시디언 노트가 생성되었습니다!\n\n")
	fmt.Fprintf(&b, "**파일명**: %s\n", note.Filename)
	fmt.Fprintf(&b, "**위치**: %s\n\n", note.Path)

	if note.Warning != "" {
		fmt.Fprintf(&b, "⚠️ **주의**: %s\n\n", note.Warning)
	}

	fmt.Fprintf(&b, "**미리보기**:\n%s\n\n", note.Preview)
	fmt.Fprintf(&b, "**연결된 태그**: %s\n\n", strings.Join(note.Tags, ", "))

	if note.Warning != "" {
		b.WriteString("노트를 옵시디언에서 열려면 위 경로의 파일을 옵시디언 볼트로 복사하세요.")
	} else {
		b.WriteString("노트가 성공적으로 생성되어 옵시디언 볼트에 저장되었습니다.")
	}
	return b.String()
}
