// Package service implements the clinical reasoning engines that sit
// between the reference registries and the MCP tools: case analysis,
// lab interpretation, care plan composition, knowledge lookup, note
// composition and the research assistant.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/registry"
)

// CaseAnalyzer derives a structured clinical case analysis from patient
// info and presenting symptoms.
type CaseAnalyzer struct {
	logger      *logrus.Logger
	medications *registry.MedicationRegistry
	labValues   *registry.LabValueRegistry
	diagnoses   *registry.DiagnosisRegistry
}

// NewCaseAnalyzer creates a new case analyzer.
func NewCaseAnalyzer(
	logger *logrus.Logger,
	medications *registry.MedicationRegistry,
	labValues *registry.LabValueRegistry,
	diagnoses *registry.DiagnosisRegistry,
) *CaseAnalyzer {
	return &CaseAnalyzer{
		logger:      logger,
		medications: medications,
		labValues:   labValues,
		diagnoses:   diagnoses,
	}
}

// symptomExplanations maps known presenting symptoms to their clinical
// meaning. Unknown symptoms get a generic needs-evaluation line.
var symptomExplanations = map[string]string{
	"피로":   "에너지 부족, 활동 능력 저하와 관련된 증상",
	"오심":   "위장관 불편감, 식욕 부진과 관련된 증상",
	"구토":   "위장관 자극, 탈수 위험과 관련된 증상",
	"통증":   "신체적 불편감, 삶의 질 저하와 관련된 증상",
	"호흡곤란": "산소 공급 부족, 활동 제한과 관련된 증상",
	"발열":   "감염 또는 염증 반응과 관련된 증상",
	"설사":   "수분 및 전해질 불균형 위험과 관련된 증상",
	"변비":   "장 기능 저하, 불편감과 관련된 증상",
}

const unknownSymptomExplanation = "추가 평가가 필요한 증상"

// Analyze runs the full case analysis pipeline. The context parameter
// narrows interventions to a practice setting; unrecognized values
// behave like ContextGeneral.
func (a *CaseAnalyzer) Analyze(ctx context.Context, patient domain.PatientInfo, symptoms []string, caseContext domain.CaseContext) (*domain.CaseAnalysis, error) {
	if patient.Diagnosis == "" {
		return nil, domain.NewValidationError("patient_info.diagnosis", "diagnosis is required", patient.Diagnosis)
	}
	if len(symptoms) == 0 {
		return nil, domain.NewValidationError("symptoms", "at least one symptom is required", symptoms)
	}

	a.logger.WithFields(logrus.Fields{
		"diagnosis":     patient.Diagnosis,
		"symptom_count": len(symptoms),
		"context":       caseContext,
	}).Debug("Analyzing clinical case")

	analysis := &domain.CaseAnalysis{
		PatientSummary:           a.patientSummary(patient),
		SymptomAnalysis:          a.analyzeSymptoms(symptoms),
		PossibleDiagnoses:        a.diagnoses.Suggest(symptoms),
		RelevantMedications:      a.relevantMedications(patient, symptoms),
		RelevantLabs:             a.relevantLabs(patient, symptoms),
		NursingPriorities:        a.nursingPriorities(patient, symptoms),
		RecommendedInterventions: a.recommendInterventions(symptoms, caseContext),
		MonitoringParameters:     a.monitoringParameters(patient, symptoms),
		PatientEducation:         a.patientEducation(patient, symptoms),
		ExpectedOutcomes:         a.expectedOutcomes(symptoms),
		RiskFactors:              a.riskFactors(patient, symptoms),
	}

	a.logger.WithFields(logrus.Fields{
		"suggested_diagnoses": len(analysis.PossibleDiagnoses),
		"medications":         len(analysis.RelevantMedications),
		"labs":                len(analysis.RelevantLabs),
	}).Info("Completed clinical case analysis")

	return analysis, nil
}

func (a *CaseAnalyzer) patientSummary(patient domain.PatientInfo) string {
	gender := "여성"
	if patient.Gender == "male" {
		gender = "남성"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d세 %s 환자", patient.Age, gender)
	fmt.Fprintf(&b, "\n진단: %s", patient.Diagnosis)
	if patient.Stage != "" {
		fmt.Fprintf(&b, "\n병기: %s", patient.Stage)
	}
	if patient.TreatmentProtocol != "" {
		fmt.Fprintf(&b, "\n치료 프로토콜: %s", patient.TreatmentProtocol)
	}
	if len(patient.GeneticMarkers) > 0 {
		fmt.Fprintf(&b, "\n유전자 마커: %s", strings.Join(patient.GeneticMarkers, ", "))
	}
	return b.String()
}

func (a *CaseAnalyzer) analyzeSymptoms(symptoms []string) []domain.SymptomExplanation {
	explanations := make([]domain.SymptomExplanation, 0, len(symptoms))
	for _, symptom := range symptoms {
		explanation, ok := symptomExplanations[symptom]
		if !ok {
			explanation = unknownSymptomExplanation
		}
		explanations = append(explanations, domain.SymptomExplanation{
			Symptom:     symptom,
			Explanation: explanation,
		})
	}
	return explanations
}

func (a *CaseAnalyzer) relevantMedications(patient domain.PatientInfo, symptoms []string) []domain.Medication {
	var medications []domain.Medication

	if hasSymptom(symptoms, "통증") || hasSymptom(symptoms, "pain") {
		if m, ok := a.medications.Get("morphine"); ok {
			medications = append(medications, m)
		}
	}
	if isCancerDiagnosis(patient.Diagnosis) {
		if m, ok := a.medications.Get("cyclophosphamide"); ok {
			medications = append(medications, m)
		}
	}

	return medications
}

func (a *CaseAnalyzer) relevantLabs(patient domain.PatientInfo, symptoms []string) []domain.LabValue {
	var labs []domain.LabValue

	// Baseline labs for every patient.
	for _, id := range []string{"hemoglobin", "wbc"} {
		if lv, ok := a.labValues.Get(id); ok {
			labs = append(labs, lv)
		}
	}

	if hasSymptom(symptoms, "구토") || hasSymptom(symptoms, "설사") {
		for _, id := range []string{"sodium", "potassium", "bun", "creatinine"} {
			if lv, ok := a.labValues.Get(id); ok {
				labs = append(labs, lv)
			}
		}
	}

	if isCancerDiagnosis(patient.Diagnosis) {
		for _, id := range []string{"platelet", "alt"} {
			if lv, ok := a.labValues.Get(id); ok {
				labs = append(labs, lv)
			}
		}
	}

	return labs
}

func (a *CaseAnalyzer) nursingPriorities(patient domain.PatientInfo, symptoms []string) []string {
	var priorities []string

	if hasSymptom(symptoms, "호흡곤란") {
		priorities = append(priorities, "기도 확보 및 호흡 양상 모니터링")
	}
	if hasSymptom(symptoms, "통증") {
		priorities = append(priorities, "통증 관리 및 완화")
	}
	if hasSymptom(symptoms, "구토") || hasSymptom(symptoms, "설사") {
		priorities = append(priorities, "수분 및 전해질 균형 유지")
	}
	if hasSymptom(symptoms, "피로") {
		priorities = append(priorities, "에너지 보존 및 활동 조절")
	}
	if isCancerDiagnosis(patient.Diagnosis) {
		priorities = append(priorities, "감염 예방 및 면역 상태 모니터링")
	}

	priorities = append(priorities,
		"환자 안전 및 낙상 예방",
		"심리적 지지 및 가족 교육",
	)
	return priorities
}

func (a *CaseAnalyzer) recommendInterventions(symptoms []string, caseContext domain.CaseContext) []string {
	var interventions []string

	if hasSymptom(symptoms, "통증") {
		interventions = append(interventions,
			"통증 척도를 이용한 정기적 통증 평가",
			"약물적/비약물적 통증 완화 방법 적용",
		)
	}
	if hasSymptom(symptoms, "오심") || hasSymptom(symptoms, "구토") {
		interventions = append(interventions,
			"소량씩 자주 식사하도록 격려",
			"항구토제 투여 및 효과 관찰",
		)
	}
	if hasSymptom(symptoms, "피로") {
		interventions = append(interventions,
			"활동과 휴식의 균형 유지",
			"에너지 보존 기법 교육",
		)
	}

	switch caseContext {
	case domain.ContextOncology:
		interventions = append(interventions,
			"화학요법 부작용 모니터링",
			"감염 징후 관찰 및 예방",
			"영양 상태 평가 및 관리",
		)
	case domain.ContextClinicalTrial:
		interventions = append(interventions,
			"프로토콜 준수 모니터링",
			"이상 반응 관찰 및 보고",
			"연구 관련 교육 제공",
		)
	}

	return interventions
}

func (a *CaseAnalyzer) monitoringParameters(patient domain.PatientInfo, symptoms []string) []string {
	parameters := []string{"활력징후 (혈압, 맥박, 호흡, 체온)"}

	if hasSymptom(symptoms, "구토") || hasSymptom(symptoms, "설사") {
		parameters = append(parameters,
			"수분 섭취량 및 배설량",
			"전해질 수치 (Na, K, Cl)",
		)
	}
	if hasSymptom(symptoms, "호흡곤란") {
		parameters = append(parameters,
			"산소포화도 및 호흡양상",
			"동맥혈 가스 분석",
		)
	}
	if strings.Contains(patient.Diagnosis, "암") {
		parameters = append(parameters,
			"혈액검사 (WBC, RBC, Platelet)",
			"간 기능 검사",
			"신장 기능 검사",
		)
	}

	parameters = append(parameters,
		"통증 점수 (0-10 척도)",
		"의식 수준 및 신경학적 상태",
	)
	return parameters
}

func (a *CaseAnalyzer) patientEducation(patient domain.PatientInfo, symptoms []string) []string {
	var education []string

	if hasSymptom(symptoms, "피로") {
		education = append(education,
			"적절한 휴식과 수면의 중요성",
			"점진적 활동 증가 방법",
		)
	}
	if hasSymptom(symptoms, "오심") || hasSymptom(symptoms, "구토") {
		education = append(education,
			"식사 요령 (소량씩, 자주)",
			"수분 섭취 방법",
		)
	}
	if strings.Contains(patient.Diagnosis, "암") {
		education = append(education,
			"감염 예방 수칙",
			"치료 중 주의사항",
			"부작용 발생 시 대처 방법",
		)
	}

	education = append(education,
		"응급 상황 시 연락처",
		"정기 검진 및 추적 관찰의 중요성",
	)
	return education
}

func (a *CaseAnalyzer) expectedOutcomes(symptoms []string) []string {
	var outcomes []string

	if hasSymptom(symptoms, "통증") {
		outcomes = append(outcomes, "통증 점수 3점 이하로 감소")
	}
	if hasSymptom(symptoms, "피로") {
		outcomes = append(outcomes, "일상 활동 수행 능력 향상")
	}
	if hasSymptom(symptoms, "오심") || hasSymptom(symptoms, "구토") {
		outcomes = append(outcomes, "정상적인 식사 섭취 가능")
	}

	outcomes = append(outcomes,
		"환자 안전 사고 없음",
		"치료 계획 준수",
		"감염 징후 없음",
	)
	return outcomes
}

func (a *CaseAnalyzer) riskFactors(patient domain.PatientInfo, symptoms []string) []string {
	var risks []string

	if patient.Age > 65 {
		risks = append(risks, "고령으로 인한 합병증 위험")
	}
	if hasSymptom(symptoms, "피로") || hasSymptom(symptoms, "호흡곤란") {
		risks = append(risks, "낙상 위험")
	}
	if hasSymptom(symptoms, "구토") || hasSymptom(symptoms, "설사") {
		risks = append(risks, "탈수 및 전해질 불균형 위험")
	}
	if strings.Contains(patient.Diagnosis, "암") {
		risks = append(risks,
			"면역 억제로 인한 감염 위험",
			"영양 불량 위험",
		)
	}

	return risks
}

func hasSymptom(symptoms []string, target string) bool {
	for _, s := range symptoms {
		if s == target {
			return true
		}
	}
	return false
}

// isCancerDiagnosis matches the oncology branch of medication and lab
// selection. The Korean check is a substring match, the English one
// matches "cancer" anywhere in the diagnosis text.
func isCancerDiagnosis(diagnosis string) bool {
	return strings.Contains(diagnosis, "암") || strings.Contains(diagnosis, "cancer")
}
