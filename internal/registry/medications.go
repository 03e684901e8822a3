// Package registry holds the in-memory reference catalogs served by the
// nursing tutor: medications, lab values, NANDA nursing diagnoses,
// clinical protocols, clinical case studies and the knowledge topic
// store. Each registry is populated once at construction and is
// read-only afterwards; a single shared instance serves the whole
// process.
package registry

import (
	"strings"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// MedicationRegistry is the reference catalog of medications used in
// nursing practice.
type MedicationRegistry struct {
	order       []string
	medications map[string]domain.Medication
}

// NewMedicationRegistry builds the registry from the fixed catalog.
func NewMedicationRegistry() *MedicationRegistry {
	r := &MedicationRegistry{medications: make(map[string]domain.Medication)}
	for _, m := range medicationCatalog {
		r.order = append(r.order, m.ID)
		r.medications[m.ID] = m
	}
	return r
}

// Get returns the medication with the given id.
func (r *MedicationRegistry) Get(id string) (domain.Medication, bool) {
	m, ok := r.medications[id]
	return m, ok
}

// Search matches the query case-insensitively against name, Korean
// name, category and Korean category. Results keep catalog order.
func (r *MedicationRegistry) Search(query string) []domain.Medication {
	term := strings.ToLower(query)
	var results []domain.Medication
	for _, id := range r.order {
		m := r.medications[id]
		if strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(m.NameKorean, query) ||
			strings.Contains(strings.ToLower(m.Category), term) ||
			strings.Contains(m.CategoryKorean, query) {
			results = append(results, m)
		}
	}
	return results
}

// GetByCategory returns medications whose category matches exactly,
// case-insensitive on the English name, exact on the Korean name.
func (r *MedicationRegistry) GetByCategory(category string) []domain.Medication {
	var results []domain.Medication
	for _, id := range r.order {
		m := r.medications[id]
		if strings.EqualFold(m.Category, category) || m.CategoryKorean == category {
			results = append(results, m)
		}
	}
	return results
}

// All returns every medication in catalog order.
func (r *MedicationRegistry) All() []domain.Medication {
	results := make([]domain.Medication, 0, len(r.order))
	for _, id := range r.order {
		results = append(results, r.medications[id])
	}
	return results
}

var medicationCatalog = []domain.Medication{
	{
		ID:             "morphine",
		Name:           "Morphine",
		NameKorean:     "모르핀",
		GenericName:    "Morphine Sulfate",
		Category:       "Opioid Analgesic",
		CategoryKorean: "마약성 진통제",
		Indications: []string{
			"중등도에서 심한 통증 관리",
			"암성 통증",
			"급성 심근경색증",
			"폐부종",
		},
		Contraindications: []string{
			"호흡억제",
			"급성 천식 발작",
			"마비성 장폐색",
			"MAOI 복용 중",
		},
		Dosage: domain.Dosage{
			Adult:     "IV/IM: 2-10mg q2-4h PRN, PO: 15-30mg q4h PRN",
			Pediatric: "0.05-0.1mg/kg q2-4h PRN",
			Geriatric: "성인 용량의 50% 감량",
		},
		Route: []string{"IV", "IM", "SC", "PO", "PR"},
		SideEffects: domain.SideEffects{
			Common:  []string{"졸음", "변비", "오심", "구토", "어지러움"},
			Serious: []string{"호흡억제", "저혈압", "의존성", "혼돈"},
		},
		NursingConsiderations: []string{
			"투여 전 호흡수, 혈압, 통증 정도 평가",
			"호흡수 12회/분 미만 시 투여 보류",
			"날록손(Naloxone) 준비",
			"PCA 사용 시 환자 교육",
			"변비 예방 간호",
		},
		PatientEducation: []string{
			"졸음, 어지러움 주의 (운전 금지)",
			"음주 금지",
			"변비 예방법 교육",
			"약물 의존성 위험 설명",
		},
		Interactions:         []string{"벤조디아제핀", "알코올", "MAO 억제제", "삼환계 항우울제"},
		MonitoringParameters: []string{"호흡수", "의식수준", "통증점수", "장운동"},
	},
	{
		ID:             "vancomycin",
		Name:           "Vancomycin",
		NameKorean:     "반코마이신",
		GenericName:    "Vancomycin HCl",
		Category:       "Glycopeptide Antibiotic",
		CategoryKorean: "글리코펩타이드계 항생제",
		Indications: []string{
			"MRSA 감염",
			"심내막염",
			"골수염",
			"Clostridium difficile 대장염",
		},
		Contraindications: []string{
			"약물 과민반응",
		},
		Dosage: domain.Dosage{
			Adult:     "IV: 15-20mg/kg q8-12h (TDM 필요)",
			Pediatric: "15mg/kg q6h",
			Geriatric: "신기능에 따라 용량 조절",
		},
		Route: []string{"IV", "PO (C.diff 치료 시)"},
		SideEffects: domain.SideEffects{
			Common:  []string{"Red man syndrome", "정맥염", "오심"},
			Serious: []string{"신독성", "이독성", "호중구감소증"},
		},
		NursingConsiderations: []string{
			"최소 60분 이상 천천히 주입",
			"Red man syndrome 예방 위해 주입속도 조절",
			"정맥염 예방 위해 희석농도 준수",
			"Peak/Trough level 모니터링",
			"신기능 검사 정기 확인",
		},
		PatientEducation: []string{
			"치료 기간 동안 청력 변화 보고",
			"발진, 가려움증 발생 시 보고",
			"충분한 수분 섭취",
		},
		Interactions:         []string{"아미노글리코사이드", "루프 이뇨제", "신독성 약물"},
		MonitoringParameters: []string{"혈중농도(Trough)", "BUN/Cr", "CBC", "청력검사"},
	},
	{
		ID:             "heparin",
		Name:           "Heparin",
		NameKorean:     "헤파린",
		GenericName:    "Heparin Sodium",
		Category:       "Anticoagulant",
		CategoryKorean: "항응고제",
		Indications: []string{
			"심부정맥혈전증(DVT)",
			"폐색전증(PE)",
			"급성관상동맥증후군",
			"혈액투석",
			"DIC",
		},
		Contraindications: []string{
			"활동성 출혈",
			"심한 혈소판감소증",
			"HIT(헤파린 유발 혈소판감소증)",
		},
		Dosage: domain.Dosage{
			Adult:     "DVT/PE: 초기 80 units/kg bolus, 이후 18 units/kg/hr 지속주입",
			Pediatric: "초기 75 units/kg, 이후 20 units/kg/hr",
			Geriatric: "감량 고려",
		},
		Route: []string{"IV", "SC"},
		SideEffects: domain.SideEffects{
			Common:  []string{"출혈", "멍", "주사부위 통증"},
			Serious: []string{"대량출혈", "HIT", "골다공증(장기사용)"},
		},
		NursingConsiderations: []string{
			"aPTT 모니터링 (목표: 정상치의 1.5-2.5배)",
			"출혈 징후 관찰",
			"혈소판 수치 모니터링",
			"Protamine sulfate 준비",
			"다른 항응고제와 병용 주의",
		},
		PatientEducation: []string{
			"출혈 징후 보고 (잇몸출혈, 혈뇨, 흑색변)",
			"부드러운 칫솔 사용",
			"면도기 사용 주의",
			"낙상 예방",
		},
		Interactions:         []string{"아스피린", "NSAIDs", "와파린", "클로피도그렐"},
		MonitoringParameters: []string{"aPTT", "PT/INR", "Hgb/Hct", "혈소판", "잠혈검사"},
	},
	{
		ID:             "enalapril",
		Name:           "Enalapril",
		NameKorean:     "에날라프릴",
		GenericName:    "Enalapril Maleate",
		Category:       "ACE Inhibitor",
		CategoryKorean: "ACE 억제제",
		Indications: []string{
			"고혈압",
			"심부전",
			"좌심실 기능장애",
			"당뇨병성 신증",
		},
		Contraindications: []string{
			"임신",
			"양측성 신동맥 협착",
			"혈관부종 병력",
			"고칼륨혈증",
		},
		Dosage: domain.Dosage{
			Adult:     "초기 5mg qd, 최대 40mg/day",
			Pediatric: "0.08mg/kg qd",
			Geriatric: "초기 2.5mg qd",
		},
		Route: []string{"PO"},
		SideEffects: domain.SideEffects{
			Common:  []string{"마른기침", "어지러움", "피로", "두통"},
			Serious: []string{"혈관부종", "고칼륨혈증", "급성신부전"},
		},
		NursingConsiderations: []string{
			"첫 투여 시 저혈압 주의",
			"기립성 저혈압 평가",
			"칼륨 수치 모니터링",
			"신기능 검사 정기 확인",
			"임신 가능성 확인",
		},
		PatientEducation: []string{
			"마른기침 발생 가능성",
			"천천히 일어나기",
			"칼륨 보충제 주의",
			"임신 시 즉시 중단",
		},
		Interactions:         []string{"칼륨보전이뇨제", "NSAIDs", "리튬", "칼륨 보충제"},
		MonitoringParameters: []string{"혈압", "K+", "BUN/Cr", "CBC"},
	},
	{
		ID:             "insulin_regular",
		Name:           "Regular Insulin",
		NameKorean:     "속효성 인슐린",
		GenericName:    "Insulin Regular",
		Category:       "Antidiabetic",
		CategoryKorean: "항당뇨제",
		Indications: []string{
			"제1형 당뇨병",
			"제2형 당뇨병",
			"당뇨병성 케톤산증(DKA)",
			"고혈당성 고삼투압 상태(HHS)",
		},
		Contraindications: []string{
			"저혈당",
			"인슐린 과민반응",
		},
		Dosage: domain.Dosage{
			Adult:     "개별화 용량, DKA: 0.1 units/kg/hr IV",
			Pediatric: "0.5-1 units/kg/day 분할투여",
			Geriatric: "감량 고려",
		},
		Route: []string{"SC", "IV", "IM"},
		SideEffects: domain.SideEffects{
			Common:  []string{"저혈당", "주사부위 지방이영양증", "체중증가"},
			Serious: []string{"심한 저혈당", "알레르기 반응", "저칼륨혈증"},
		},
		NursingConsiderations: []string{
			"식전 30분 투여",
			"혈당 모니터링",
			"주사부위 순환",
			"저혈당 증상 관찰",
			"포도당 준비",
		},
		PatientEducation: []string{
			"저혈당 증상 및 대처법",
			"규칙적인 식사",
			"혈당 자가측정법",
			"주사부위 순환의 중요성",
			"인슐린 보관법",
		},
		Interactions:         []string{"베타차단제", "알코올", "MAO 억제제", "경구용 혈당강하제"},
		MonitoringParameters: []string{"혈당", "HbA1c", "K+", "체중"},
	},
	{
		ID:             "cyclophosphamide",
		Name:           "Cyclophosphamide",
		NameKorean:     "사이클로포스파마이드",
		GenericName:    "Cyclophosphamide",
		Category:       "Alkylating Agent",
		CategoryKorean: "알킬화제",
		Indications: []string{
			"백혈병",
			"림프종",
			"유방암",
			"난소암",
			"자가면역질환",
		},
		Contraindications: []string{
			"심한 골수억제",
			"활동성 감염",
			"임신",
			"방광염",
		},
		Dosage: domain.Dosage{
			Adult:     "IV: 500-1500mg/m² q2-4주",
			Pediatric: "용량 조절 필요",
			Geriatric: "신기능에 따라 조절",
		},
		Route: []string{"IV", "PO"},
		SideEffects: domain.SideEffects{
			Common:  []string{"오심/구토", "탈모", "골수억제", "피로"},
			Serious: []string{"출혈성 방광염", "이차암", "불임", "심독성"},
		},
		NursingConsiderations: []string{
			"충분한 수분공급 (2-3L/day)",
			"메스나(Mesna) 병용",
			"감염 예방 교육",
			"혈구수치 모니터링",
			"항구토제 전처치",
		},
		PatientEducation: []string{
			"충분한 수분 섭취",
			"자주 배뇨",
			"감염 예방수칙",
			"탈모 대처법",
			"피임의 중요성",
		},
		Interactions:         []string{"알로퓨리놀", "와파린", "생백신"},
		MonitoringParameters: []string{"CBC", "간기능", "신기능", "요검사"},
	},
	{
		ID:             "furosemide",
		Name:           "Furosemide",
		NameKorean:     "푸로세마이드",
		GenericName:    "Furosemide",
		Category:       "Loop Diuretic",
		CategoryKorean: "루프 이뇨제",
		Indications: []string{
			"심부전으로 인한 부종",
			"간경변으로 인한 복수",
			"신증후군",
			"고혈압",
		},
		Contraindications: []string{
			"무뇨",
			"심한 저칼륨혈증",
			"설폰아마이드 과민반응",
		},
		Dosage: domain.Dosage{
			Adult:     "PO: 20-80mg qd-bid, IV: 20-40mg",
			Pediatric: "1-2mg/kg/dose",
			Geriatric: "초기 저용량 시작",
		},
		Route: []string{"PO", "IV", "IM"},
		SideEffects: domain.SideEffects{
			Common:  []string{"저칼륨혈증", "저나트륨혈증", "탈수", "어지러움"},
			Serious: []string{"이독성", "급성신부전", "심한 전해질 불균형"},
		},
		NursingConsiderations: []string{
			"I&O 모니터링",
			"체중 매일 측정",
			"전해질 수치 확인",
			"기립성 저혈압 평가",
			"IV 투여 시 천천히 (4mg/min 이하)",
		},
		PatientEducation: []string{
			"칼륨이 풍부한 음식 섭취",
			"천천히 일어나기",
			"체중 변화 모니터링",
			"아침에 복용 권장",
		},
		Interactions:         []string{"디곡신", "NSAIDs", "리튬", "아미노글리코사이드"},
		MonitoringParameters: []string{"전해질", "BUN/Cr", "혈압", "체중", "I&O"},
	},
}
