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

// NursingKnowledgeTool implements the get_nursing_knowledge MCP tool.
type NursingKnowledgeTool struct {
	logger    *logrus.Logger
	knowledge *service.KnowledgeService
}

// NursingKnowledgeParams defines parameters for the get_nursing_knowledge tool.
type NursingKnowledgeParams struct {
	Topic     string `json:"topic" validate:"required"`
	Level     string `json:"level" validate:"required"`
	Specialty string `json:"specialty,omitempty"`
}

// NewNursingKnowledgeTool creates a new get_nursing_knowledge tool.
func NewNursingKnowledgeTool(logger *logrus.Logger, knowledge *service.KnowledgeService) *NursingKnowledgeTool {
	return &NursingKnowledgeTool{
		logger:    logger,
		knowledge: knowledge,
	}
}

// HandleTool implements the ToolHandler interface for get_nursing_knowledge.
func (t *NursingKnowledgeTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "get_nursing_knowledge").Info("Processing knowledge query")

	var params NursingKnowledgeParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	answer, err := t.knowledge.Query(ctx, params.Topic, params.Level, params.Specialty)
	if err != nil {
		return toolErrorResponse("Knowledge query failed", err)
	}

	t.logger.WithFields(logrus.Fields{
		"topic": params.Topic,
		"level": params.Level,
		"kind":  answer.Kind,
	}).Info("Knowledge query completed")

	return textResponse(renderKnowledgeAnswer(answer))
}

// GetToolInfo returns tool metadata.
func (t *NursingKnowledgeTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_nursing_knowledge",
		Description: "간호학 지식 검색 및 설명",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "검색할 주제",
				},
				"level": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"basic", "intermediate", "advanced"},
					"description": "학습 수준",
				},
				"specialty": map[string]interface{}{
					"type":        "string",
					"description": "전문 분야 (선택)",
				},
			},
			"required": []string{"topic", "level"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *NursingKnowledgeTool) ValidateParams(params interface{}) error {
	var knowledgeParams NursingKnowledgeParams
	return t.parseAndValidateParams(params, &knowledgeParams)
}

func (t *NursingKnowledgeTool) parseAndValidateParams(params interface{}, target *NursingKnowledgeParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	if target.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	switch target.Level {
	case domain.LevelBasic, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("level must be one of basic, intermediate, advanced")
	}
	return nil
}

// renderKnowledgeAnswer renders the dispatch result of a knowledge
// query as markdown. Each registry kind has its own layout; registry
// misses produce a not-found line rather than an error.
func renderKnowledgeAnswer(answer *domain.KnowledgeAnswer) string {
	switch answer.Kind {
	case domain.KindMedications:
		return renderMedications(answer.Query, answer.Medications)
	case domain.KindLabValues:
		return renderLabValues(answer.Query, answer.LabValues)
	case domain.KindDiagnoses:
		return renderDiagnoses(answer.Query, answer.Diagnoses)
	case domain.KindProtocols:
		return renderProtocols(answer.Query, answer.Protocols)
	default:
		return renderTopic(answer.Topic, answer.Level)
	}
}

func renderMedications(query string, medications []domain.Medication) string {
	if len(medications) == 0 {
		return fmt.Sprintf("❌ \"%s\"에 대한 약물 정보를 찾을 수 없습니다.", query)
	}

	var b strings.Builder
	b.WriteString("# 💊 약물 정보 검색 결과\n\n")

	for _, med := range medications {
		fmt.Fprintf(&b, "## %s (%s)\n\n", med.NameKorean, med.Name)
		fmt.Fprintf(&b, "**분류**: %s\n", med.CategoryKorean)
		fmt.Fprintf(&b, "**일반명**: %s\n\n", med.GenericName)

		b.WriteString("### 적응증\n")
		writeBullets(&b, med.Indications)

		b.WriteString("\n### 용법용량\n")
		fmt.Fprintf(&b, "- 성인: %s\n", med.Dosage.Adult)
		if med.Dosage.Pediatric != "" {
			fmt.Fprintf(&b, "- 소아: %s\n", med.Dosage.Pediatric)
		}
		if med.Dosage.Geriatric != "" {
			fmt.Fprintf(&b, "- 노인: %s\n", med.Dosage.Geriatric)
		}

		b.WriteString("\n### 투여경로\n")
		b.WriteString(strings.Join(med.Route, ", ") + "\n")

		b.WriteString("\n### 부작용\n**흔한 부작용**:\n")
		writeBullets(&b, med.SideEffects.Common)
		b.WriteString("\n**심각한 부작용**:\n")
		writeBullets(&b, med.SideEffects.Serious)

		b.WriteString("\n### 간호 고려사항\n")
		writeBullets(&b, med.NursingConsiderations)

		b.WriteString("\n### 환자 교육\n")
		writeBullets(&b, med.PatientEducation)

		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func renderLabValues(query string, labValues []domain.LabValue) string {
	if len(labValues) == 0 {
		return fmt.Sprintf("❌ \"%s\"에 대한 검사 정보를 찾을 수 없습니다.", query)
	}

	var b strings.Builder
	b.WriteString("# 🔬 검사 수치 정보\n\n")

	for _, lab := range labValues {
		fmt.Fprintf(&b, "## %s (%s)\n\n", lab.NameKorean, lab.Name)
		fmt.Fprintf(&b, "**분류**: %s\n", lab.Category)
		fmt.Fprintf(&b, "**단위**: %s\n\n", lab.Unit)

		b.WriteString("### 정상 범위\n")
		if lab.NormalRange.AdultGeneral != "" {
			fmt.Fprintf(&b, "- 성인: %s\n", lab.NormalRange.AdultGeneral)
		} else {
			if lab.NormalRange.AdultMale != "" {
				fmt.Fprintf(&b, "- 남성: %s\n", lab.NormalRange.AdultMale)
			}
			if lab.NormalRange.AdultFemale != "" {
				fmt.Fprintf(&b, "- 여성: %s\n", lab.NormalRange.AdultFemale)
			}
		}

		b.WriteString("\n### 위험 수치\n")
		if lab.CriticalValues.Low != "" {
			fmt.Fprintf(&b, "- 낮음: %s\n", lab.CriticalValues.Low)
		}
		if lab.CriticalValues.High != "" {
			fmt.Fprintf(&b, "- 높음: %s\n", lab.CriticalValues.High)
		}

		b.WriteString("\n### 임상적 의의\n**증가 시**:\n")
		writeBullets(&b, lab.ClinicalSignificance.Increased)
		b.WriteString("\n**감소 시**:\n")
		writeBullets(&b, lab.ClinicalSignificance.Decreased)

		b.WriteString("\n### 간호 고려사항\n")
		writeBullets(&b, lab.NursingConsiderations)

		fmt.Fprintf(&b, "\n**검체**: %s\n", lab.SpecimenType)
		if lab.FastingRequired {
			b.WriteString("**공복 필요**: 예\n")
		} else {
			b.WriteString("**공복 필요**: 아니오\n")
		}

		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func renderDiagnoses(query string, diagnoses []domain.NursingDiagnosis) string {
	if len(diagnoses) == 0 {
		return fmt.Sprintf("❌ \"%s\"에 대한 간호진단을 찾을 수 없습니다.", query)
	}

	var b strings.Builder
	b.WriteString("# 🏥 NANDA 간호진단\n\n")

	for _, diag := range diagnoses {
		fmt.Fprintf(&b, "## [%s] %s\n", diag.Code, diag.NameKorean)
		fmt.Fprintf(&b, "*%s*\n\n", diag.NameEnglish)
		fmt.Fprintf(&b, "**영역**: %s (%s)\n", diag.Domain.NameKorean, diag.Domain.Name)
		fmt.Fprintf(&b, "**과**: %s (%s)\n\n", diag.Class.NameKorean, diag.Class.Name)

		fmt.Fprintf(&b, "### 정의\n%s\n\n", diag.Definition)

		b.WriteString("### 특성\n")
		writeBullets(&b, diag.DefiningCharacteristics)

		b.WriteString("\n### 관련 요인\n")
		writeBullets(&b, diag.RelatedFactors)

		if len(diag.RiskFactors) > 0 {
			b.WriteString("\n### 위험 요인\n")
			writeBullets(&b, diag.RiskFactors)
		}

		b.WriteString("\n### 간호중재\n**우선순위 중재**:\n")
		writeBullets(&b, diag.Interventions.Priority)
		b.WriteString("\n**추가 중재**:\n")
		writeBullets(&b, diag.Interventions.Suggested)

		b.WriteString("\n### 기대 결과\n")
		writeBullets(&b, diag.ExpectedOutcomes)

		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func renderProtocols(query string, protocols []domain.ClinicalProtocol) string {
	if len(protocols) == 0 {
		return fmt.Sprintf("❌ \"%s\"에 대한 프로토콜을 찾을 수 없습니다.", query)
	}

	var b strings.Builder
	b.WriteString("# 📋 임상 프로토콜\n\n")

	for _, proto := range protocols {
		fmt.Fprintf(&b, "## %s (%s)\n\n", proto.NameKorean, proto.Name)
		fmt.Fprintf(&b, "**분류**: %s\n", proto.CategoryKorean)
		fmt.Fprintf(&b, "**목적**: %s\n\n", proto.Purpose)

		b.WriteString("### 적응증\n")
		writeBullets(&b, proto.Indications)

		b.WriteString("\n### 금기사항\n")
		writeBullets(&b, proto.Contraindications)

		b.WriteString("\n### 필요 장비\n")
		writeBullets(&b, proto.Equipment)

		b.WriteString("\n### 절차\n")
		for _, step := range proto.Procedure {
			fmt.Fprintf(&b, "**%d단계**: %s\n", step.Step, step.Action)
			fmt.Fprintf(&b, "   *근거*: %s\n\n", step.Rationale)
		}

		b.WriteString("### 합병증\n")
		writeBullets(&b, proto.Complications)

		b.WriteString("\n### 간호 고려사항\n")
		writeBullets(&b, proto.NursingConsiderations)

		b.WriteString("\n### 기록사항\n")
		writeBullets(&b, proto.Documentation)

		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func renderTopic(content *domain.KnowledgeContent, level string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", content.Title)

	switch level {
	case domain.LevelBasic:
		fmt.Fprintf(&b, "## 🎯 기본 개념\n%s\n\n", content.Definition)
		b.WriteString("## 💡 핵심 포인트\n")
		writeBullets(&b, content.KeyPoints)
		b.WriteString("\n")
	case domain.LevelIntermediate:
		fmt.Fprintf(&b, "## 📚 상세 설명\n%s\n\n", content.DetailedExplanation)
		b.WriteString("## 🔍 임상 적용\n")
		writeBullets(&b, content.ClinicalApplications)
		b.WriteString("\n")
	default:
		fmt.Fprintf(&b, "## 🧬 고급 개념\n%s\n\n", content.AdvancedConcepts)
		fmt.Fprintf(&b, "## 🔬 최신 연구\n%s\n\n", content.RecentResearch)
		fmt.Fprintf(&b, "## 📊 임상 증거\n%s\n\n", content.ClinicalEvidence)
	}

	b.WriteString("## 📝 학습 포인트\n")
	if len(content.LearningObjectives) > 0 {
		writeBullets(&b, content.LearningObjectives)
	} else {
		b.WriteString("추가 학습 자료 준비 중\n")
	}

	b.WriteString("\n## 🔗 관련 개념\n")
	if len(content.RelatedConcepts) > 0 {
		for _, concept := range content.RelatedConcepts {
			fmt.Fprintf(&b, "- [[%s]]\n", concept)
		}
	} else {
		b.WriteString("관련 개념 매핑 중\n")
	}

	if content.SpecialtyFocus != "" {
		fmt.Fprintf(&b, "\n## 🎓 전문 분야 심화: %s\n", content.SpecialtyFocus)
		writeBullets(&b, content.SpecializedApplications)
		if content.SpecialtyConsiderations != "" {
			fmt.Fprintf(&b, "\n%s\n", content.SpecialtyConsiderations)
		}
	}

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
