package registry

import (
	"strings"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// CaseRegistry is the reference catalog of worked clinical case
// studies.
type CaseRegistry struct {
	order []string
	cases map[string]domain.ClinicalCase
}

// NewCaseRegistry builds the registry from the fixed catalog.
func NewCaseRegistry() *CaseRegistry {
	r := &CaseRegistry{cases: make(map[string]domain.ClinicalCase)}
	for _, c := range caseCatalog {
		r.order = append(r.order, c.ID)
		r.cases[c.ID] = c
	}
	return r
}

// Get returns the case with the given id.
func (r *CaseRegistry) Get(id string) (domain.ClinicalCase, bool) {
	c, ok := r.cases[id]
	return c, ok
}

// GetByCategory returns cases whose category matches,
// case-insensitive like the other registries.
func (r *CaseRegistry) GetByCategory(category string) []domain.ClinicalCase {
	var results []domain.ClinicalCase
	for _, id := range r.order {
		c := r.cases[id]
		if strings.EqualFold(c.Category, category) {
			results = append(results, c)
		}
	}
	return results
}

// Search matches the query against title (case-insensitive), Korean
// title, patient diagnosis and category. Results keep catalog order.
func (r *CaseRegistry) Search(query string) []domain.ClinicalCase {
	term := strings.ToLower(query)
	var results []domain.ClinicalCase
	for _, id := range r.order {
		c := r.cases[id]
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(c.TitleKorean, query) ||
			strings.Contains(c.Patient.Diagnosis, query) ||
			strings.Contains(c.Category, query) {
			results = append(results, c)
		}
	}
	return results
}

// All returns every case in catalog order.
func (r *CaseRegistry) All() []domain.ClinicalCase {
	results := make([]domain.ClinicalCase, 0, len(r.order))
	for _, id := range r.order {
		results = append(results, r.cases[id])
	}
	return results
}

var caseCatalog = []domain.ClinicalCase{
	{
		ID:          "postop_pneumonia",
		Title:       "Post-operative Pneumonia",
		TitleKorean: "수술 후 폐렴",
		Category:    "surgical",
		Patient: domain.CasePatient{
			Age:            68,
			Gender:         "male",
			Diagnosis:      "대장암 수술 후 3일째, 폐렴 의심",
			MedicalHistory: []string{"고혈압", "당뇨병", "40갑년 흡연력"},
			CurrentMedications: []string{
				"Enalapril 5mg PO qd",
				"Metformin 500mg PO bid",
				"Morphine PCA",
			},
		},
		PresentingSymptoms: []string{
			"발열",
			"기침",
			"화농성 객담",
			"호흡곤란",
			"수술부위 통증",
		},
		VitalSigns: domain.VitalSigns{
			BloodPressure:    "145/90",
			HeartRate:        102,
			RespiratoryRate:  28,
			Temperature:      38.5,
			OxygenSaturation: 88,
			PainScore:        6,
		},
		LabResults: map[string]domain.LabResult{
			"WBC":        {Value: "15200", Unit: "cells/μL", Interpretation: "증가 (정상: 4,500-11,000)"},
			"Hemoglobin": {Value: "10.2", Unit: "g/dL", Interpretation: "감소 (정상: 13.5-17.5)"},
			"CRP":        {Value: "85", Unit: "mg/L", Interpretation: "증가 (정상: <3.0)"},
			"Glucose":    {Value: "185", Unit: "mg/dL", Interpretation: "증가 (정상: 70-110)"},
		},
		ClinicalScenario: "68세 남자 환자가 대장암으로 전신마취 하 복강경 대장절제술을 받은 후 3일째입니다. 오늘 아침부터 38.5도의 발열과 함께 기침, 화농성 객담을 호소하고 있습니다. 호흡수가 증가하고 산소포화도가 떨어져 있으며, 청진 시 우하엽에서 수포음이 들립니다.",
		NursingAssessment: []string{
			"호흡양상: 빈호흡, 얕은 호흡",
			"객담: 황색 화농성",
			"청진: 우하엽 수포음",
			"의식상태: 명료하나 불안해함",
			"수술부위: 깨끗하고 건조함",
			"기동성: 통증으로 인해 제한적",
		},
		NursingDiagnoses: []string{
			"비효율적 호흡양상",
			"감염 위험성",
			"급성 통증",
			"활동 지속성 장애",
		},
		ExpectedInterventions: []string{
			"산소 투여 (목표 SpO2 >92%)",
			"심호흡 및 기침 격려 (incentive spirometer)",
			"체위변경 q2h",
			"조기이상 격려",
			"항생제 투여 및 효과 모니터링",
			"수분섭취 격려 (객담 배출 용이)",
			"흉부물리요법",
			"통증 관리로 심호흡 가능하게 함",
		},
		CriticalThinkingPoints: []string{
			"수술 후 폐렴의 위험요인은?",
			"Incentive spirometer 사용의 중요성은?",
			"조기이상이 폐렴 예방에 미치는 영향은?",
			"통증 관리와 호흡 운동의 관계는?",
		},
	},
	{
		ID:          "dka",
		Title:       "Diabetic Ketoacidosis",
		TitleKorean: "당뇨병성 케톤산증",
		Category:    "medical",
		Patient: domain.CasePatient{
			Age:            25,
			Gender:         "female",
			Diagnosis:      "제1형 당뇨병, DKA",
			MedicalHistory: []string{"제1형 당뇨병 (15년)"},
			CurrentMedications: []string{
				"Insulin glargine 20U SC qhs",
				"Insulin lispro sliding scale",
			},
		},
		PresentingSymptoms: []string{
			"오심",
			"구토",
			"복통",
			"다뇨",
			"갈증",
			"피로감",
			"Kussmaul 호흡",
		},
		VitalSigns: domain.VitalSigns{
			BloodPressure:    "98/60",
			HeartRate:        118,
			RespiratoryRate:  32,
			Temperature:      37.2,
			OxygenSaturation: 98,
			PainScore:        5,
		},
		LabResults: map[string]domain.LabResult{
			"Glucose": {Value: "485", Unit: "mg/dL", Interpretation: "심각한 고혈당"},
			"pH":      {Value: "7.15", Unit: "", Interpretation: "산증 (정상: 7.35-7.45)"},
			"HCO3":    {Value: "12", Unit: "mEq/L", Interpretation: "감소 (정상: 22-28)"},
			"Ketones": {Value: "+++", Unit: "", Interpretation: "양성"},
			"K":       {Value: "5.2", Unit: "mEq/L", Interpretation: "증가 (정상: 3.5-5.0)"},
			"Na":      {Value: "128", Unit: "mEq/L", Interpretation: "감소 (정상: 136-145)"},
		},
		ClinicalScenario: "25세 여자 환자가 2일 전부터 감기 증상이 있었고, 인슐린을 제대로 투여하지 않았다고 합니다. 오늘 아침부터 심한 오심, 구토, 복통을 호소하며 응급실에 내원했습니다. 의식은 명료하나 탈수 증상이 뚜렷하고, 깊고 빠른 호흡(Kussmaul)을 보이고 있습니다.",
		NursingAssessment: []string{
			"피부: 건조하고 탄력성 저하",
			"점막: 구강 건조",
			"호흡: Kussmaul 호흡, 과일 냄새",
			"의식: 명료하나 기면",
			"소변량: 다뇨",
			"체중: 2kg 감소 (2일간)",
		},
		NursingDiagnoses: []string{
			"체액부족",
			"불안정한 혈당 수치",
			"지식부족",
			"감염 위험성",
		},
		ExpectedInterventions: []string{
			"IV 수액 공급 (0.9% NS)",
			"인슐린 지속 정맥주입",
			"전해질 모니터링 (특히 K+)",
			"혈당 측정 q1h",
			"I&O 정확히 측정",
			"심전도 모니터링",
			"DKA 유발 요인 확인",
			"당뇨 교육 계획 수립",
		},
		CriticalThinkingPoints: []string{
			"DKA에서 칼륨 수치가 중요한 이유는?",
			"수액 치료의 우선순위는?",
			"뇌부종의 위험성과 예방법은?",
			"환자 교육의 중점 사항은?",
		},
	},
	{
		ID:          "neutropenia",
		Title:       "Chemotherapy-induced Neutropenia",
		TitleKorean: "항암치료 후 호중구감소증",
		Category:    "oncology",
		Patient: domain.CasePatient{
			Age:            52,
			Gender:         "female",
			Diagnosis:      "유방암, 항암치료 중",
			MedicalHistory: []string{"유방암 Stage IIIA", "AC 항암요법 3차 투여 후 10일째"},
			CurrentMedications: []string{
				"Ondansetron 8mg PO prn",
				"Filgrastim 300mcg SC qd",
			},
		},
		PresentingSymptoms: []string{
			"발열",
			"오한",
			"피로감",
			"인후통",
			"식욕부진",
		},
		VitalSigns: domain.VitalSigns{
			BloodPressure:    "110/70",
			HeartRate:        92,
			RespiratoryRate:  20,
			Temperature:      38.3,
			OxygenSaturation: 97,
			PainScore:        2,
		},
		LabResults: map[string]domain.LabResult{
			"WBC":        {Value: "800", Unit: "cells/μL", Interpretation: "심각한 호중구감소증"},
			"ANC":        {Value: "320", Unit: "cells/μL", Interpretation: "심각한 감소 (정상: >1500)"},
			"Hemoglobin": {Value: "9.8", Unit: "g/dL", Interpretation: "감소"},
			"Platelet":   {Value: "85000", Unit: "/μL", Interpretation: "감소 (정상: 150,000-400,000)"},
		},
		ClinicalScenario: "52세 여자 환자가 유방암으로 AC 항암요법을 받고 있습니다. 3차 항암치료 후 10일째 되는 날, 38.3도의 발열과 오한을 주소로 응급실에 내원했습니다. 혈액검사 결과 심각한 호중구감소증이 확인되었습니다.",
		NursingAssessment: []string{
			"전신상태: 피로감, 쇠약감",
			"피부: 창백, 점상출혈 없음",
			"구강: 구내염 없음",
			"호흡음: 깨끗함",
			"복부: 부드러움, 압통 없음",
			"정맥주사 부위: 발적이나 부종 없음",
		},
		NursingDiagnoses: []string{
			"감염 위험성",
			"피로",
			"영양불균형: 신체요구량보다 적음",
			"불안",
		},
		ExpectedInterventions: []string{
			"보호격리 시행",
			"철저한 손위생",
			"활력징후 q4h 모니터링",
			"광범위 항생제 투여",
			"혈액배양 검사",
			"매일 CBC 확인",
			"구강간호 q4h",
			"방문객 제한",
			"생과일/생야채 제한",
			"G-CSF 투여 지속",
		},
		CriticalThinkingPoints: []string{
			"호중구감소증 환자의 감염 징후는?",
			"보호격리의 구체적 방법은?",
			"Febrile neutropenia의 응급성은?",
			"G-CSF의 작용기전과 효과는?",
		},
	},
	{
		ID:          "stroke",
		Title:       "Acute Ischemic Stroke",
		TitleKorean: "급성 허혈성 뇌졸중",
		Category:    "neurological",
		Patient: domain.CasePatient{
			Age:            72,
			Gender:         "male",
			Diagnosis:      "좌측 중대뇌동맥 경색",
			MedicalHistory: []string{"고혈압", "심방세동", "이상지질혈증"},
			CurrentMedications: []string{
				"Warfarin 5mg PO qd",
				"Atorvastatin 40mg PO qd",
				"Amlodipine 5mg PO qd",
			},
		},
		PresentingSymptoms: []string{
			"우측 편마비",
			"실어증",
			"연하곤란",
			"의식저하",
			"안면마비",
		},
		VitalSigns: domain.VitalSigns{
			BloodPressure:    "168/95",
			HeartRate:        88,
			RespiratoryRate:  18,
			Temperature:      37.0,
			OxygenSaturation: 95,
			PainScore:        0,
		},
		LabResults: map[string]domain.LabResult{
			"INR":     {Value: "1.2", Unit: "", Interpretation: "치료 범위 미달"},
			"Glucose": {Value: "156", Unit: "mg/dL", Interpretation: "경도 상승"},
			"PT":      {Value: "13.5", Unit: "seconds", Interpretation: "정상"},
		},
		ClinicalScenario: "72세 남자 환자가 2시간 전 갑자기 발생한 우측 편마비와 언어장애로 응급실에 내원했습니다. 심방세동으로 와파린을 복용 중이었으나, 최근 복약 순응도가 떨어졌다고 합니다. CT 상 좌측 중대뇌동맥 영역의 급성 경색이 확인되었습니다.",
		NursingAssessment: []string{
			"GCS: E3 V2 M5 = 10점",
			"동공: 양측 3mm, 광반사 정상",
			"근력: 우측 상하지 2/5",
			"감각: 우측 감각 저하",
			"언어: 표현성 실어증",
			"연하: 기침 반사 약함",
		},
		NursingDiagnoses: []string{
			"신체 기동성 장애",
			"언어소통 장애",
			"연하 장애",
			"낙상 위험성",
			"피부 통합성 장애 위험성",
		},
		ExpectedInterventions: []string{
			"신경학적 상태 q1h 모니터링",
			"두개내압 상승 징후 관찰",
			"혈압 관리 (과도한 하강 피함)",
			"침상머리 30도 상승",
			"연하평가 전 NPO",
			"욕창 예방 (2시간마다 체위변경)",
			"관절운동 범위 유지",
			"DVT 예방",
			"실어증 환자 의사소통 방법",
			"조기 재활 계획",
		},
		CriticalThinkingPoints: []string{
			"급성기 뇌졸중 환자의 혈압 관리 원칙은?",
			"연하곤란 평가의 중요성은?",
			"DVT 예방법은?",
			"재활의 적절한 시작 시기는?",
		},
	},
	{
		ID:          "pediatric_asthma",
		Title:       "Pediatric Asthma Exacerbation",
		TitleKorean: "소아 천식 악화",
		Category:    "pediatric",
		Patient: domain.CasePatient{
			Age:            8,
			Gender:         "male",
			Diagnosis:      "천식 급성 악화",
			MedicalHistory: []string{"천식", "아토피 피부염", "알레르기 비염"},
			CurrentMedications: []string{
				"Budesonide/Formoterol inhaler",
				"Montelukast 5mg PO qd",
			},
		},
		PresentingSymptoms: []string{
			"호흡곤란",
			"기침",
			"천명음",
			"흉부 압박감",
			"운동 시 악화",
		},
		VitalSigns: domain.VitalSigns{
			BloodPressure:    "110/70",
			HeartRate:        120,
			RespiratoryRate:  32,
			Temperature:      37.5,
			OxygenSaturation: 91,
			PainScore:        0,
		},
		LabResults: map[string]domain.LabResult{
			"WBC":        {Value: "11500", Unit: "cells/μL", Interpretation: "경도 상승"},
			"Eosinophil": {Value: "8", Unit: "%", Interpretation: "증가 (정상: 1-4%)"},
		},
		ClinicalScenario: "8세 남아가 2일 전부터 감기 증상이 있었고, 오늘 오후부터 호흡곤란이 심해져 응급실에 내원했습니다. 말할 때 문장을 끝까지 말하기 어려워하며, 보조근을 사용한 호흡을 보이고 있습니다. 청진 시 양측 폐야에서 천명음이 들립니다.",
		NursingAssessment: []string{
			"호흡양상: 빈호흡, 보조근 사용",
			"피부: 경도 청색증",
			"의식: 명료하나 불안해함",
			"말하기: 짧은 문장만 가능",
			"자세: 앉은 자세 선호",
			"PEFR: 예측치의 50%",
		},
		NursingDiagnoses: []string{
			"비효율적 호흡양상",
			"가스교환 장애",
			"불안",
			"활동 지속성 장애",
		},
		ExpectedInterventions: []string{
			"고농도 산소 투여",
			"Salbutamol 분무요법 q20min x 3",
			"Prednisolone 경구 투여",
			"지속적 SpO2 모니터링",
			"편안한 체위 (fowler's position)",
			"수분 섭취 격려",
			"불안 완화 (부모 동반)",
			"Peak flow meter 사용법 교육",
			"유발 요인 확인 및 회피 교육",
			"MDI 사용법 재교육",
		},
		CriticalThinkingPoints: []string{
			"소아 천식의 중증도 평가 방법은?",
			"분무요법의 효과적인 시행법은?",
			"천식 행동 계획의 중요성은?",
			"학교생활에서의 천식 관리는?",
		},
	},
}
