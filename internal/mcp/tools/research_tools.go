package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// ResearchAssistantTool implements the research_assistant MCP tool.
type ResearchAssistantTool struct {
	logger   *logrus.Logger
	research *service.ResearchService
	now      func() time.Time
}

// ResearchAssistantParams defines parameters for the research_assistant tool.
type ResearchAssistantParams struct {
	ResearchArea  string `json:"research_area" validate:"required"`
	Query         string `json:"query" validate:"required"`
	EvidenceLevel string `json:"evidence_level,omitempty"`
}

// NewResearchAssistantTool creates a new research_assistant tool.
func NewResearchAssistantTool(logger *logrus.Logger, research *service.ResearchService) *ResearchAssistantTool {
	return &ResearchAssistantTool{
		logger:   logger,
		research: research,
		now:      time.Now,
	}
}

// HandleTool implements the ToolHandler interface for research_assistant.
func (t *ResearchAssistantTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "research_assistant").Info("Processing research query")

	var params ResearchAssistantParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	summary, err := t.research.Query(ctx, params.ResearchArea, params.Query, params.EvidenceLevel)
	if err != nil {
		return toolErrorResponse("Research query failed", err)
	}

	t.logger.WithFields(logrus.Fields{
		"research_area": params.ResearchArea,
		"studies":       len(summary.RecentStudies),
	}).Info("Research query completed")

	return textResponse(t.renderResearchSummary(summary))
}

// GetToolInfo returns tool metadata.
func (t *ResearchAssistantTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "research_assistant",
		Description: "임상시험 및 연구 관련 정보 검색",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"research_area": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"clinical_trial", "genetics", "oncology"},
					"description": "연구 영역",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "검색 쿼리",
				},
				"evidence_level": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"systematic_review", "rct", "case_study"},
					"description": "근거 수준",
				},
			},
			"required": []string{"research_area", "query"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *ResearchAssistantTool) ValidateParams(params interface{}) error {
	var researchParams ResearchAssistantParams
	return t.parseAndValidateParams(params, &researchParams)
}

func (t *ResearchAssistantTool) parseAndValidateParams(params interface{}, target *ResearchAssistantParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	switch target.ResearchArea {
	case "clinical_trial", "genetics", "oncology":
	default:
		return fmt.Errorf("research_area must be one of clinical_trial, genetics, oncology")
	}
	if target.Query == "" {
		return fmt.Errorf("query is required")
	}
	if target.EvidenceLevel != "" {
		switch target.EvidenceLevel {
		case "systematic_review", "rct", "case_study":
		default:
			return fmt.Errorf("evidence_level must be one of systematic_review, rct, case_study")
		}
	}
	return nil
}

func (t *ResearchAssistantTool) renderResearchSummary(summary *domain.ResearchSummary) string {
	var b strings.Builder

	b.WriteString("# 🔬 연구 보조 결과\n\n")

	b.WriteString("## 📊 검색 정보\n")
	fmt.Fprintf(&b, "- **연구 영역**: %s\n", summary.ResearchArea)
	fmt.Fprintf(&b, "- **검색 쿼리**: \"%s\"\n", summary.SearchQuery)
	fmt.Fprintf(&b, "- **근거 수준**: %s\n\n", summary.EvidenceLevel)

	fmt.Fprintf(&b, "## 📝 연구 요약\n%s\n\n", summary.Summary)

	b.WriteString("## 🔍 주요 연구 결과\n")
	writeBullets(&b, summary.KeyFindings)

	b.WriteString("\n## 🏥 임상적 의미\n")
	writeBullets(&b, summary.ClinicalImplications)

	b.WriteString("\n## 👩‍⚕️ 간호 고려사항\n")
	writeBullets(&b, summary.NursingConsiderations)

	if len(summary.RecentStudies) > 0 {
		b.WriteString("\n## 📚 관련 연구 문헌\n")
		for i, study := range summary.RecentStudies {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, study.Title)
			fmt.Fprintf(&b, "- **저자**: %s\n", strings.Join(study.Authors, ", "))
			fmt.Fprintf(&b, "- **발행년도**: %d\n", study.Year)
			fmt.Fprintf(&b, "- **저널**: %s\n", study.Journal)
			fmt.Fprintf(&b, "- **근거 수준**: %s\n", study.EvidenceLevel)
			fmt.Fprintf(&b, "- **요약**: %s\n\n", study.Summary)
		}
	}

	b.WriteString("## 💡 권장사항\n")
	writeBullets(&b, summary.Recommendations)

	b.WriteString("\n## 🔮 향후 연구 방향\n")
	writeBullets(&b, summary.FutureResearch)

	now := t.now()
	fmt.Fprintf(&b, "\n---\n*검색 완료 시간: %s*\n", now.Format(koreanTimestamp))
	fmt.Fprintf(&b, "*다음 업데이트: %s*\n", now.Add(7*24*time.Hour).Format(koreanTimestamp))
	return b.String()
}
