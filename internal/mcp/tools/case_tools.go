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

// koreanTimestamp is the footer timestamp layout of rendered reports.
const koreanTimestamp = "2006. 1. 2. 15:04:05"

// ClinicalCaseTool implements the analyze_clinical_case MCP tool.
type ClinicalCaseTool struct {
	logger   *logrus.Logger
	analyzer *service.CaseAnalyzer
	now      func() time.Time
}

// ClinicalCaseParams defines parameters for the analyze_clinical_case tool.
type ClinicalCaseParams struct {
	PatientInfo domain.PatientInfo `json:"patient_info" validate:"required"`
	Symptoms    []string           `json:"symptoms" validate:"required"`
	Context     string             `json:"context,omitempty"`
}

// NewClinicalCaseTool creates a new analyze_clinical_case tool.
func NewClinicalCaseTool(logger *logrus.Logger, analyzer *service.CaseAnalyzer) *ClinicalCaseTool {
	return &ClinicalCaseTool{
		logger:   logger,
		analyzer: analyzer,
		now:      time.Now,
	}
}

// HandleTool implements the ToolHandler interface for analyze_clinical_case.
func (t *ClinicalCaseTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "analyze_clinical_case").Info("Processing clinical case analysis")

	var params ClinicalCaseParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	caseContext := domain.CaseContext(params.Context)
	if params.Context == "" {
		caseContext = domain.ContextGeneral
	}

	analysis, err := t.analyzer.Analyze(ctx, params.PatientInfo, params.Symptoms, caseContext)
	if err != nil {
		return toolErrorResponse("Case analysis failed", err)
	}

	t.logger.WithFields(logrus.Fields{
		"diagnosis": params.PatientInfo.Diagnosis,
		"symptoms":  len(params.Symptoms),
		"context":   caseContext,
	}).Info("Clinical case analysis completed")

	return textResponse(t.renderCaseAnalysis(analysis))
}

// GetToolInfo returns tool metadata.
func (t *ClinicalCaseTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "analyze_clinical_case",
		Description: "임상 사례 분석 및 간호계획 수립",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"patient_info": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"age":                map[string]interface{}{"type": "number"},
						"gender":             map[string]interface{}{"type": "string", "enum": []string{"male", "female"}},
						"diagnosis":          map[string]interface{}{"type": "string"},
						"stage":              map[string]interface{}{"type": "string"},
						"treatment_protocol": map[string]interface{}{"type": "string"},
						"genetic_markers":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					},
					"required": []string{"age", "gender", "diagnosis"},
				},
				"symptoms": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "증상 목록",
				},
				"context": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"oncology", "general", "clinical_trial"},
					"description": "임상 상황",
				},
			},
			"required": []string{"patient_info", "symptoms"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *ClinicalCaseTool) ValidateParams(params interface{}) error {
	var caseParams ClinicalCaseParams
	return t.parseAndValidateParams(params, &caseParams)
}

func (t *ClinicalCaseTool) parseAndValidateParams(params interface{}, target *ClinicalCaseParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	if target.PatientInfo.Age <= 0 {
		return fmt.Errorf("patient_info.age is required")
	}
	if target.PatientInfo.Gender != "male" && target.PatientInfo.Gender != "female" {
		return fmt.Errorf("patient_info.gender must be male or female")
	}
	if target.PatientInfo.Diagnosis == "" {
		return fmt.Errorf("patient_info.diagnosis is required")
	}
	if len(target.Symptoms) == 0 {
		return fmt.Errorf("symptoms is required")
	}
	if target.Context != "" {
		switch domain.CaseContext(target.Context) {
		case domain.ContextOncology, domain.ContextGeneral, domain.ContextClinicalTrial:
		default:
			return fmt.Errorf("context must be one of oncology, general, clinical_trial")
		}
	}
	return nil
}

func (t *ClinicalCaseTool) renderCaseAnalysis(analysis *domain.CaseAnalysis) string {
	var b strings.Builder

	b.WriteString("# 📋 임상 사례 분석\n\n")
	fmt.Fprintf(&b, "## 👤 환자 정보\n%s\n\n", analysis.PatientSummary)

	b.WriteString("## 🔍 증상 분석\n")
	for _, s := range analysis.SymptomAnalysis {
		fmt.Fprintf(&b, "- %s: %s\n", s.Symptom, s.Explanation)
	}

	if len(analysis.PossibleDiagnoses) > 0 {
		b.WriteString("\n## 🏥 간호진단 (NANDA)\n")
		for i, scored := range analysis.PossibleDiagnoses {
			diag := scored.Diagnosis
			fmt.Fprintf(&b, "### %d. [%s] %s\n", i+1, diag.Code, diag.NameKorean)
			fmt.Fprintf(&b, "**정의**: %s\n", diag.Definition)
			b.WriteString("**우선순위 중재**:\n")
			priority := diag.Interventions.Priority
			if len(priority) > 3 {
				priority = priority[:3]
			}
			writeBullets(&b, priority)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## 🎯 간호 우선순위\n")
	writeNumbered(&b, analysis.NursingPriorities)

	b.WriteString("\n## 🏥 권장 간호중재\n")
	writeBullets(&b, analysis.RecommendedInterventions)

	if len(analysis.RelevantMedications) > 0 {
		b.WriteString("\n## 💊 관련 약물\n")
		for _, med := range analysis.RelevantMedications {
			fmt.Fprintf(&b, "### %s (%s)\n", med.NameKorean, med.Name)
			fmt.Fprintf(&b, "- **용법**: %s\n", med.Dosage.Adult)
			common := med.SideEffects.Common
			if len(common) > 3 {
				common = common[:3]
			}
			fmt.Fprintf(&b, "- **주요 부작용**: %s\n", strings.Join(common, ", "))
			if len(med.NursingConsiderations) > 0 {
				fmt.Fprintf(&b, "- **간호 고려사항**: %s\n", med.NursingConsiderations[0])
			}
			b.WriteString("\n")
		}
	}

	if len(analysis.RelevantLabs) > 0 {
		b.WriteString("\n## 🔬 모니터링 검사\n")
		for _, lab := range analysis.RelevantLabs {
			fmt.Fprintf(&b, "### %s\n", lab.NameKorean)
			rangeText := lab.NormalRange.AdultGeneral
			if rangeText == "" {
				rangeText = lab.NormalRange.AdultMale
			}
			fmt.Fprintf(&b, "- **정상범위**: %s\n", rangeText)
			if len(lab.NursingConsiderations) > 0 {
				fmt.Fprintf(&b, "- **간호 고려사항**: %s\n", lab.NursingConsiderations[0])
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## 📊 모니터링 지표\n")
	writeBullets(&b, analysis.MonitoringParameters)

	b.WriteString("\n## 📚 환자 교육\n")
	writeBullets(&b, analysis.PatientEducation)

	b.WriteString("\n## 🎯 기대 결과\n")
	writeBullets(&b, analysis.ExpectedOutcomes)

	b.WriteString("\n## ⚠️ 위험 요인\n")
	writeBullets(&b, analysis.RiskFactors)

	fmt.Fprintf(&b, "\n---\n*분석 완료 시간: %s*\n", t.now().Format(koreanTimestamp))
	return b.String()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
