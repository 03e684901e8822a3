package registry

import (
	"strings"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// LabValueRegistry is the reference catalog of laboratory tests with
// normal ranges, critical values and clinical significance.
type LabValueRegistry struct {
	order     []string
	labValues map[string]domain.LabValue
}

// NewLabValueRegistry builds the registry from the fixed catalog.
func NewLabValueRegistry() *LabValueRegistry {
	r := &LabValueRegistry{labValues: make(map[string]domain.LabValue)}
	for _, lv := range labValueCatalog {
		r.order = append(r.order, lv.ID)
		r.labValues[lv.ID] = lv
	}
	return r
}

// Get returns the lab value with the given id.
func (r *LabValueRegistry) Get(id string) (domain.LabValue, bool) {
	lv, ok := r.labValues[id]
	return lv, ok
}

// Search matches the query case-insensitively against name, Korean
// name and category. Results keep catalog order.
func (r *LabValueRegistry) Search(query string) []domain.LabValue {
	term := strings.ToLower(query)
	var results []domain.LabValue
	for _, id := range r.order {
		lv := r.labValues[id]
		if strings.Contains(strings.ToLower(lv.Name), term) ||
			strings.Contains(lv.NameKorean, term) ||
			strings.Contains(strings.ToLower(lv.Category), term) {
			results = append(results, lv)
		}
	}
	return results
}

// GetByCategory returns lab values whose category matches exactly,
// case-insensitive.
func (r *LabValueRegistry) GetByCategory(category string) []domain.LabValue {
	var results []domain.LabValue
	for _, id := range r.order {
		lv := r.labValues[id]
		if strings.EqualFold(lv.Category, category) {
			results = append(results, lv)
		}
	}
	return results
}

// All returns every lab value in catalog order.
func (r *LabValueRegistry) All() []domain.LabValue {
	results := make([]domain.LabValue, 0, len(r.order))
	for _, id := range r.order {
		results = append(results, r.labValues[id])
	}
	return results
}

var labValueCatalog = []domain.LabValue{
	{
		ID:         "hemoglobin",
		Name:       "Hemoglobin",
		NameKorean: "헤모글로빈",
		Category:   "CBC",
		NormalRange: domain.NormalRange{
			AdultMale:   "13.5-17.5 g/dL",
			AdultFemale: "12.0-16.0 g/dL",
			Pediatric:   "11.0-16.0 g/dL",
			Geriatric:   "12.0-17.0 g/dL",
		},
		Unit: "g/dL",
		CriticalValues: domain.CriticalValues{
			Low:  "<7.0 g/dL",
			High: ">20.0 g/dL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"탈수", "다혈구증", "만성폐쇄성폐질환", "고지대 거주"},
			Decreased: []string{"빈혈", "출혈", "혈액희석", "영양결핍", "만성질환"},
		},
		NursingConsiderations: []string{
			"빈혈 증상 관찰 (피로, 창백, 호흡곤란)",
			"출혈 징후 확인",
			"수혈 필요성 평가",
			"영양상태 사정",
		},
		SpecimenType:    "전혈 (EDTA)",
		FastingRequired: false,
	},
	{
		ID:         "wbc",
		Name:       "White Blood Cell Count",
		NameKorean: "백혈구 수",
		Category:   "CBC",
		NormalRange: domain.NormalRange{
			AdultGeneral: "4,500-11,000 cells/μL",
			Pediatric:    "5,000-15,000 cells/μL",
			Geriatric:    "4,000-10,000 cells/μL",
		},
		Unit: "cells/μL",
		CriticalValues: domain.CriticalValues{
			Low:  "<2,000 cells/μL",
			High: ">30,000 cells/μL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"감염", "백혈병", "스트레스", "흡연", "알레르기", "조직괴사"},
			Decreased: []string{"골수억제", "화학요법", "방사선치료", "비장기능항진", "자가면역질환"},
		},
		NursingConsiderations: []string{
			"감염 징후 모니터링",
			"호중구감소증 시 역격리 고려",
			"발열 시 즉시 보고",
			"감염 예방 교육",
		},
		SpecimenType:    "전혈 (EDTA)",
		FastingRequired: false,
	},
	{
		ID:         "platelet",
		Name:       "Platelet Count",
		NameKorean: "혈소판 수",
		Category:   "CBC",
		NormalRange: domain.NormalRange{
			AdultGeneral: "150,000-400,000/μL",
		},
		Unit: "/μL",
		CriticalValues: domain.CriticalValues{
			Low:  "<50,000/μL",
			High: ">1,000,000/μL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"골수증식질환", "출혈", "철결핍", "염증", "악성종양"},
			Decreased: []string{"골수억제", "ITP", "DIC", "간경변", "화학요법"},
		},
		NursingConsiderations: []string{
			"출혈 경향 관찰 (점상출혈, 자반)",
			"혈소판 <50,000 시 출혈 주의",
			"침습적 시술 전 확인",
			"혈전 위험 평가",
		},
		SpecimenType:    "전혈 (EDTA)",
		FastingRequired: false,
	},
	{
		ID:         "sodium",
		Name:       "Sodium",
		NameKorean: "나트륨",
		Category:   "Electrolytes",
		NormalRange: domain.NormalRange{
			AdultGeneral: "136-145 mEq/L",
		},
		Unit: "mEq/L",
		CriticalValues: domain.CriticalValues{
			Low:  "<120 mEq/L",
			High: ">160 mEq/L",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"탈수", "요붕증", "고알도스테론증", "과도한 나트륨 섭취"},
			Decreased: []string{"SIADH", "심부전", "간경변", "신부전", "구토/설사"},
		},
		NursingConsiderations: []string{
			"신경학적 증상 관찰",
			"의식수준 변화 모니터링",
			"수분섭취량 및 배설량 측정",
			"급격한 교정 피하기 (central pontine myelinolysis 위험)",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "potassium",
		Name:       "Potassium",
		NameKorean: "칼륨",
		Category:   "Electrolytes",
		NormalRange: domain.NormalRange{
			AdultGeneral: "3.5-5.0 mEq/L",
		},
		Unit: "mEq/L",
		CriticalValues: domain.CriticalValues{
			Low:  "<2.5 mEq/L",
			High: ">6.5 mEq/L",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"신부전", "칼륨보전이뇨제", "대사성산증", "조직손상", "ACE억제제"},
			Decreased: []string{"이뇨제", "구토/설사", "인슐린치료", "영양결핍"},
		},
		NursingConsiderations: []string{
			"EKG 변화 모니터링",
			"근력 평가",
			"심장리듬 관찰",
			"고칼륨혈증 시 calcium gluconate 준비",
			"IV 칼륨 투여 시 희석농도 및 속도 준수",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "creatinine",
		Name:       "Creatinine",
		NameKorean: "크레아티닌",
		Category:   "Renal Function",
		NormalRange: domain.NormalRange{
			AdultMale:   "0.7-1.3 mg/dL",
			AdultFemale: "0.6-1.1 mg/dL",
			Geriatric:   "0.7-1.4 mg/dL",
		},
		Unit: "mg/dL",
		CriticalValues: domain.CriticalValues{
			High: ">7.0 mg/dL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"급성/만성 신부전", "탈수", "요로폐색", "근육손상"},
			Decreased: []string{"근육량 감소", "임신", "간질환"},
		},
		NursingConsiderations: []string{
			"신기능 모니터링",
			"약물 용량 조절 필요성 평가",
			"수분 상태 평가",
			"투석 필요성 고려",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "bun",
		Name:       "Blood Urea Nitrogen",
		NameKorean: "혈중요소질소",
		Category:   "Renal Function",
		NormalRange: domain.NormalRange{
			AdultGeneral: "8-20 mg/dL",
		},
		Unit: "mg/dL",
		CriticalValues: domain.CriticalValues{
			High: ">100 mg/dL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"신부전", "탈수", "고단백식이", "위장관출혈", "심부전"},
			Decreased: []string{"간질환", "영양결핍", "과수화"},
		},
		NursingConsiderations: []string{
			"BUN/Cr 비율 평가",
			"수분상태 평가",
			"단백질 섭취량 확인",
			"요독증 증상 관찰",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "alt",
		Name:       "Alanine Aminotransferase",
		NameKorean: "ALT",
		Category:   "Liver Function",
		NormalRange: domain.NormalRange{
			AdultMale:   "10-40 U/L",
			AdultFemale: "10-35 U/L",
		},
		Unit: "U/L",
		CriticalValues: domain.CriticalValues{
			High: ">1000 U/L",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"급성간염", "간경변", "간독성약물", "지방간", "알코올성간질환"},
			Decreased: []string{"임상적 의미 없음"},
		},
		NursingConsiderations: []string{
			"간독성 약물 확인",
			"알코올 섭취력 확인",
			"황달 징후 관찰",
			"복부 통증 평가",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "troponin",
		Name:       "Troponin I/T",
		NameKorean: "트로포닌",
		Category:   "Cardiac Markers",
		NormalRange: domain.NormalRange{
			AdultGeneral: "<0.04 ng/mL",
		},
		Unit: "ng/mL",
		CriticalValues: domain.CriticalValues{
			High: ">0.04 ng/mL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"급성심근경색", "불안정협심증", "심근염", "폐색전증", "신부전"},
			Decreased: []string{"임상적 의미 없음"},
		},
		NursingConsiderations: []string{
			"흉통 평가",
			"EKG 모니터링",
			"연속적 troponin 측정",
			"심장약물 투여 준비",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "pt",
		Name:       "Prothrombin Time",
		NameKorean: "프로트롬빈시간",
		Category:   "Coagulation",
		NormalRange: domain.NormalRange{
			AdultGeneral: "11-13 seconds",
		},
		Unit: "seconds",
		CriticalValues: domain.CriticalValues{
			High: ">30 seconds",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"와파린 치료", "간질환", "비타민K 결핍", "DIC", "응고인자 결핍"},
			Decreased: []string{"임상적 의미 없음"},
		},
		NursingConsiderations: []string{
			"INR 함께 확인",
			"출혈 징후 관찰",
			"와파린 용량 조절",
			"비타민K 준비",
		},
		SpecimenType:    "혈장 (Citrate)",
		FastingRequired: false,
	},
	{
		ID:         "inr",
		Name:       "International Normalized Ratio",
		NameKorean: "INR",
		Category:   "Coagulation",
		NormalRange: domain.NormalRange{
			AdultGeneral: "0.8-1.2 (치료목표: 2.0-3.0)",
		},
		Unit: "ratio",
		CriticalValues: domain.CriticalValues{
			High: ">5.0",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"와파린 과다", "간질환", "비타민K 결핍"},
			Decreased: []string{"와파린 부족", "비타민K 섭취"},
		},
		NursingConsiderations: []string{
			"와파린 치료 모니터링",
			"목표 INR 범위 확인",
			"출혈 위험 평가",
			"식이 교육 (비타민K 함유 음식)",
		},
		SpecimenType:    "혈장 (Citrate)",
		FastingRequired: false,
	},
	{
		ID:         "glucose",
		Name:       "Blood Glucose",
		NameKorean: "혈당",
		Category:   "Metabolic",
		NormalRange: domain.NormalRange{
			AdultGeneral: "70-110 mg/dL (공복), <140 mg/dL (식후 2시간)",
		},
		Unit: "mg/dL",
		CriticalValues: domain.CriticalValues{
			Low:  "<50 mg/dL",
			High: ">500 mg/dL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"당뇨병", "스트레스", "스테로이드", "급성질환", "췌장염"},
			Decreased: []string{"인슐린 과다", "간질환", "부신기능부전", "알코올"},
		},
		NursingConsiderations: []string{
			"저혈당 증상 관찰",
			"의식수준 확인",
			"식사시간과 관련성 확인",
			"인슐린 투여 시간 조정",
		},
		SpecimenType:    "혈장",
		FastingRequired: true,
	},
	{
		ID:         "hba1c",
		Name:       "Hemoglobin A1c",
		NameKorean: "당화혈색소",
		Category:   "Metabolic",
		NormalRange: domain.NormalRange{
			AdultGeneral: "<5.7% (정상), 5.7-6.4% (당뇨전단계), ≥6.5% (당뇨)",
		},
		Unit: "%",
		CriticalValues: domain.CriticalValues{
			High: ">14%",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"조절되지 않는 당뇨", "만성 고혈당"},
			Decreased: []string{"빈혈", "용혈", "최근 수혈"},
		},
		NursingConsiderations: []string{
			"3개월간 평균 혈당 반영",
			"당뇨 관리 상태 평가",
			"치료 계획 조정",
			"환자 교육 강화",
		},
		SpecimenType:    "전혈 (EDTA)",
		FastingRequired: false,
	},
	{
		ID:         "tsh",
		Name:       "Thyroid Stimulating Hormone",
		NameKorean: "갑상선자극호르몬",
		Category:   "Endocrine",
		NormalRange: domain.NormalRange{
			AdultGeneral: "0.4-4.5 mIU/L",
		},
		Unit: "mIU/L",
		CriticalValues: domain.CriticalValues{
			Low:  "<0.1 mIU/L",
			High: ">10 mIU/L",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"갑상선기능저하증", "하시모토갑상선염"},
			Decreased: []string{"갑상선기능항진증", "그레이브스병"},
		},
		NursingConsiderations: []string{
			"갑상선 증상 평가",
			"약물 복용 확인",
			"심박수, 체중 변화 모니터링",
			"Free T4와 함께 해석",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "crp",
		Name:       "C-Reactive Protein",
		NameKorean: "C-반응단백",
		Category:   "Inflammatory Markers",
		NormalRange: domain.NormalRange{
			AdultGeneral: "<3.0 mg/L",
		},
		Unit: "mg/L",
		CriticalValues: domain.CriticalValues{
			High: ">100 mg/L",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"급성감염", "염증성질환", "조직손상", "악성종양", "심근경색"},
			Decreased: []string{"임상적 의미 없음"},
		},
		NursingConsiderations: []string{
			"감염 징후 관찰",
			"항생제 반응 모니터링",
			"ESR과 함께 평가",
			"치료 효과 판정",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
	{
		ID:         "cea",
		Name:       "Carcinoembryonic Antigen",
		NameKorean: "암배아항원",
		Category:   "Tumor Markers",
		NormalRange: domain.NormalRange{
			AdultGeneral: "<3.0 ng/mL (비흡연자), <5.0 ng/mL (흡연자)",
		},
		Unit: "ng/mL",
		CriticalValues: domain.CriticalValues{
			High: ">20 ng/mL",
		},
		ClinicalSignificance: domain.ClinicalSignificance{
			Increased: []string{"대장암", "폐암", "유방암", "췌장암", "간경변", "흡연"},
			Decreased: []string{"치료 반응 양호"},
		},
		NursingConsiderations: []string{
			"암 진단보다는 치료 모니터링 용도",
			"흡연력 확인",
			"다른 종양표지자와 함께 평가",
			"정기적 추적검사",
		},
		SpecimenType:    "혈청",
		FastingRequired: false,
	},
}
