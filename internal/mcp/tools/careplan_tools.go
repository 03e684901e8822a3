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

// CarePlanTool implements the generate_care_plan MCP tool.
type CarePlanTool struct {
	logger   *logrus.Logger
	composer *service.CarePlanComposer
	now      func() time.Time
}

// CarePlanParams defines parameters for the generate_care_plan tool.
type CarePlanParams struct {
	NursingDiagnosis    []string `json:"nursing_diagnosis" validate:"required"`
	PatientGoals        []string `json:"patient_goals,omitempty"`
	InterventionsNeeded []string `json:"interventions_needed,omitempty"`
}

// NewCarePlanTool creates a new generate_care_plan tool.
func NewCarePlanTool(logger *logrus.Logger, composer *service.CarePlanComposer) *CarePlanTool {
	return &CarePlanTool{
		logger:   logger,
		composer: composer,
		now:      time.Now,
	}
}

// HandleTool implements the ToolHandler interface for generate_care_plan.
func (t *CarePlanTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "generate_care_plan").Info("Processing care plan generation")

	var params CarePlanParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	plan, err := t.composer.Compose(ctx, params.NursingDiagnosis, params.PatientGoals, params.InterventionsNeeded)
	if err != nil {
		return toolErrorResponse("Care plan generation failed", err)
	}

	t.logger.WithFields(logrus.Fields{
		"diagnoses":     len(params.NursingDiagnosis),
		"goals":         len(plan.Goals),
		"interventions": len(plan.Interventions),
	}).Info("Care plan generated")

	return textResponse(t.renderCarePlan(plan))
}

// GetToolInfo returns tool metadata.
func (t *CarePlanTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "generate_care_plan",
		Description: "간호진단 기반 간호계획서 생성",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"nursing_diagnosis": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "간호진단 목록",
				},
				"patient_goals": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "환자 목표",
				},
				"interventions_needed": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "필요한 간호중재",
				},
			},
			"required": []string{"nursing_diagnosis"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *CarePlanTool) ValidateParams(params interface{}) error {
	var planParams CarePlanParams
	return t.parseAndValidateParams(params, &planParams)
}

func (t *CarePlanTool) parseAndValidateParams(params interface{}, target *CarePlanParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	if len(target.NursingDiagnosis) == 0 {
		return fmt.Errorf("nursing_diagnosis is required")
	}
	return nil
}

func (t *CarePlanTool) renderCarePlan(plan *domain.CarePlan) string {
	var b strings.Builder

	b.WriteString("# 📋 간호계획서\n\n")

	b.WriteString("## 📊 간호진단 분석\n")
	for i, analysis := range plan.DiagnosisAnalysis {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, analysis.Diagnosis)
		fmt.Fprintf(&b, "- **범주**: %s\n", analysis.Category)
		fmt.Fprintf(&b, "- **정의**: %s\n", analysis.Definition)
		if len(analysis.RiskFactors) > 0 {
			fmt.Fprintf(&b, "- **위험요인**: %s\n", strings.Join(analysis.RiskFactors, ", "))
		}
		if len(analysis.RelatedFactors) > 0 {
			fmt.Fprintf(&b, "- **관련요인**: %s\n", strings.Join(analysis.RelatedFactors, ", "))
		}
		fmt.Fprintf(&b, "- **우선순위**: %s\n\n", analysis.PriorityLevel)
	}

	b.WriteString("## 🎯 환자 목표\n")
	writeNumbered(&b, plan.Goals)

	b.WriteString("\n## 🏥 간호중재\n")
	writeNumbered(&b, plan.Interventions)

	b.WriteString("\n## 📝 근거/이론적 배경\n")
	writeNumbered(&b, plan.Rationale)

	b.WriteString("\n## 📏 평가 기준\n")
	writeNumbered(&b, plan.EvaluationCriteria)

	b.WriteString("\n## ⏰ 시간계획\n")
	for _, tf := range plan.Timeframes {
		fmt.Fprintf(&b, "- **%s**: %s\n", tf.Diagnosis, tf.Timeframe)
	}

	b.WriteString("\n## 🎯 우선순위 순서\n")
	for i, ranked := range plan.PriorityRanking {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, ranked.Diagnosis, ranked.Priority)
	}

	now := t.now()
	fmt.Fprintf(&b, "\n---\n*간호계획 작성 시간: %s*\n", now.Format(koreanTimestamp))
	fmt.Fprintf(&b, "*다음 평가 예정: %s*\n", now.Add(24*time.Hour).Format(koreanTimestamp))
	return b.String()
}
