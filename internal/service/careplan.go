package service

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// CarePlanComposer builds structured nursing care plans from diagnosis
// labels. The five curated labels get canned goals, interventions,
// rationales, criteria and timeframes; anything else falls back to a
// generic analysis block with medium priority and contributes nothing
// to the per-label sections.
type CarePlanComposer struct {
	logger *logrus.Logger
}

// NewCarePlanComposer creates a new care plan composer.
func NewCarePlanComposer(logger *logrus.Logger) *CarePlanComposer {
	return &CarePlanComposer{logger: logger}
}

type diagnosisInfo struct {
	category       string
	definition     string
	riskFactors    []string
	relatedFactors []string
	priority       domain.PriorityLevel
}

var carePlanDiagnoses = map[string]diagnosisInfo{
	"급성 통증": {
		category:       "신체적 간호진단",
		definition:     "조직 손상이나 염증으로 인한 불쾌한 감각적, 정서적 경험",
		riskFactors:    []string{"수술", "외상", "염증", "질병 과정"},
		relatedFactors: []string{"조직 손상", "염증 반응", "근육 긴장"},
		priority:       domain.PriorityHigh,
	},
	"감염 위험성": {
		category:       "안전 관련 간호진단",
		definition:     "병원체 침입으로 인한 감염 발생 가능성",
		riskFactors:    []string{"면역 저하", "침습적 처치", "영양 불량"},
		relatedFactors: []string{"면역 체계 저하", "방어 기전 손상"},
		priority:       domain.PriorityHigh,
	},
	"피로": {
		category:       "활동/휴식 간호진단",
		definition:     "신체적, 정신적 에너지 부족으로 인한 피로감",
		riskFactors:    []string{"질병 과정", "치료 부작용", "수면 부족"},
		relatedFactors: []string{"에너지 소모 증가", "산소 공급 부족"},
		priority:       domain.PriorityMedium,
	},
	"영양 부족": {
		category:       "영양/대사 간호진단",
		definition:     "신체 요구량보다 적은 영양소 섭취",
		riskFactors:    []string{"식욕 부진", "소화 장애", "치료 부작용"},
		relatedFactors: []string{"섭취 부족", "흡수 장애"},
		priority:       domain.PriorityMedium,
	},
	"낙상 위험성": {
		category:       "안전 관련 간호진단",
		definition:     "낙상으로 인한 신체적 손상 위험",
		riskFactors:    []string{"고령", "약물 부작용", "환경적 요인"},
		relatedFactors: []string{"신체 기능 저하", "인지 장애"},
		priority:       domain.PriorityHigh,
	},
}

var fallbackDiagnosisInfo = diagnosisInfo{
	category:       "기타",
	definition:     "추가 평가가 필요한 간호진단",
	riskFactors:    []string{"개별 평가 필요"},
	relatedFactors: []string{"개별 평가 필요"},
	priority:       domain.PriorityMedium,
}

var carePlanGoals = map[string]string{
	"급성 통증":  "통증 점수 3점 이하로 감소",
	"감염 위험성": "감염 징후 없이 치료 기간 경과",
	"피로":     "일상 활동 수행 능력 향상",
	"영양 부족":  "적절한 영양 섭취 및 체중 유지",
	"낙상 위험성": "낙상 사고 없이 안전한 환경 유지",
}

var carePlanInterventions = map[string][]string{
	"급성 통증": {
		"통증 척도를 이용한 정기적 통증 평가",
		"처방된 진통제 투여 및 효과 관찰",
		"비약물적 통증 완화 방법 적용",
	},
	"감염 위험성": {
		"손 위생 철저히 시행",
		"무균술 적용",
		"감염 징후 관찰 및 보고",
	},
	"피로": {
		"활동과 휴식의 균형 유지",
		"에너지 보존 기법 교육",
		"점진적 활동 증가 격려",
	},
	"영양 부족": {
		"영양 상태 평가",
		"선호 식품 확인 및 제공",
		"소량씩 자주 식사 격려",
	},
	"낙상 위험성": {
		"낙상 위험 평가",
		"안전한 환경 조성",
		"이동 시 보조 및 감시",
	},
}

var carePlanRationales = map[string]string{
	"급성 통증":  "적절한 통증 관리는 환자의 편안함을 증진시키고 치료 협조도를 높인다",
	"감염 위험성": "감염 예방은 환자의 회복을 촉진하고 합병증을 예방한다",
	"피로":     "에너지 관리는 환자의 기능적 능력을 향상시키고 삶의 질을 개선한다",
	"영양 부족":  "적절한 영양 공급은 조직 치유와 면역 기능을 지원한다",
	"낙상 위험성": "낙상 예방은 환자 안전을 보장하고 추가 손상을 방지한다",
}

var carePlanCriteria = map[string]string{
	"급성 통증":  "통증 점수 감소, 편안함 표현, 활동 참여도 증가",
	"감염 위험성": "정상 체온 유지, 감염 징후 없음, 백혈구 수치 정상",
	"피로":     "활동 내성 증가, 피로감 감소, 수면 패턴 개선",
	"영양 부족":  "체중 유지 또는 증가, 식욕 개선, 영양 지표 정상",
	"낙상 위험성": "낙상 사고 없음, 안전한 이동, 환경 인식 향상",
}

var carePlanTimeframes = map[string]string{
	"급성 통증":  "단기 목표: 24시간 이내, 장기 목표: 1주일 이내",
	"감염 위험성": "지속적 모니터링, 치료 기간 전반",
	"피로":     "단기 목표: 3일 이내, 장기 목표: 2주 이내",
	"영양 부족":  "단기 목표: 1주일 이내, 장기 목표: 1개월 이내",
	"낙상 위험성": "즉시 시작, 지속적 유지",
}

const fallbackTimeframe = "개별 평가 필요"

// Compose builds a care plan for the given diagnosis labels. Supplied
// goals and interventions replace the generated defaults wholesale;
// empty slices fall back to the per-label defaults.
func (c *CarePlanComposer) Compose(ctx context.Context, diagnoses, patientGoals, interventionsNeeded []string) (*domain.CarePlan, error) {
	if len(diagnoses) == 0 {
		return nil, domain.NewValidationError("nursing_diagnosis", "at least one nursing diagnosis is required", diagnoses)
	}

	c.logger.WithFields(logrus.Fields{
		"diagnoses":          len(diagnoses),
		"custom_goals":       len(patientGoals) > 0,
		"custom_initiatives": len(interventionsNeeded) > 0,
	}).Debug("Composing care plan")

	goals := patientGoals
	if len(goals) == 0 {
		goals = c.defaultGoals(diagnoses)
	}
	interventions := interventionsNeeded
	if len(interventions) == 0 {
		interventions = c.defaultInterventions(diagnoses)
	}

	plan := &domain.CarePlan{
		DiagnosisAnalysis:  c.analyzeDiagnoses(diagnoses),
		Goals:              goals,
		Interventions:      interventions,
		Rationale:          collectByLabel(diagnoses, carePlanRationales),
		EvaluationCriteria: collectByLabel(diagnoses, carePlanCriteria),
		Timeframes:         c.timeframes(diagnoses),
		PriorityRanking:    c.rankPriorities(diagnoses),
	}
	return plan, nil
}

func (c *CarePlanComposer) analyzeDiagnoses(diagnoses []string) []domain.DiagnosisAnalysis {
	analyses := make([]domain.DiagnosisAnalysis, 0, len(diagnoses))
	for _, label := range diagnoses {
		info := lookupDiagnosisInfo(label)
		analyses = append(analyses, domain.DiagnosisAnalysis{
			Diagnosis:      label,
			Category:       info.category,
			Definition:     info.definition,
			RiskFactors:    info.riskFactors,
			RelatedFactors: info.relatedFactors,
			PriorityLevel:  info.priority,
		})
	}
	return analyses
}

func (c *CarePlanComposer) defaultGoals(diagnoses []string) []string {
	return collectByLabel(diagnoses, carePlanGoals)
}

func (c *CarePlanComposer) defaultInterventions(diagnoses []string) []string {
	var interventions []string
	for _, label := range diagnoses {
		interventions = append(interventions, carePlanInterventions[label]...)
	}
	return interventions
}

func (c *CarePlanComposer) timeframes(diagnoses []string) []domain.DiagnosisTimeframe {
	timeframes := make([]domain.DiagnosisTimeframe, 0, len(diagnoses))
	for _, label := range diagnoses {
		tf, ok := carePlanTimeframes[label]
		if !ok {
			tf = fallbackTimeframe
		}
		timeframes = append(timeframes, domain.DiagnosisTimeframe{Diagnosis: label, Timeframe: tf})
	}
	return timeframes
}

// rankPriorities orders labels high, medium, low. The sort is stable
// so labels of equal priority keep their input order.
func (c *CarePlanComposer) rankPriorities(diagnoses []string) []domain.RankedDiagnosis {
	ranked := make([]domain.RankedDiagnosis, 0, len(diagnoses))
	for _, label := range diagnoses {
		ranked = append(ranked, domain.RankedDiagnosis{
			Diagnosis: label,
			Priority:  lookupDiagnosisInfo(label).priority,
		})
	}

	rank := map[domain.PriorityLevel]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    2,
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank[ranked[i].Priority] < rank[ranked[j].Priority]
	})
	return ranked
}

func lookupDiagnosisInfo(label string) diagnosisInfo {
	if info, ok := carePlanDiagnoses[label]; ok {
		return info
	}
	return fallbackDiagnosisInfo
}

// collectByLabel gathers map values for the labels that have one,
// preserving label order. Unmapped labels add nothing.
func collectByLabel(labels []string, m map[string]string) []string {
	var out []string
	for _, label := range labels {
		if v, ok := m[label]; ok {
			out = append(out, v)
		}
	}
	return out
}
