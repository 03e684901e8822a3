package registry

import (
	"sort"
	"strings"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// maxDiagnosisSuggestions caps the number of scored suggestions
// returned for a symptom set.
const maxDiagnosisSuggestions = 5

// DiagnosisRegistry is the reference catalog of NANDA nursing
// diagnoses, including the symptom-based suggestion engine.
type DiagnosisRegistry struct {
	order     []string
	diagnoses map[string]domain.NursingDiagnosis
}

// NewDiagnosisRegistry builds the registry from the fixed catalog.
func NewDiagnosisRegistry() *DiagnosisRegistry {
	r := &DiagnosisRegistry{diagnoses: make(map[string]domain.NursingDiagnosis)}
	for _, d := range diagnosisCatalog {
		r.order = append(r.order, d.Code)
		r.diagnoses[d.Code] = d
	}
	return r
}

// Get returns the diagnosis with the given NANDA code.
func (r *DiagnosisRegistry) Get(code string) (domain.NursingDiagnosis, bool) {
	d, ok := r.diagnoses[code]
	return d, ok
}

// Search matches the query case-insensitively against label, Korean
// label, domain, Korean domain and definition. Results keep catalog
// order.
func (r *DiagnosisRegistry) Search(query string) []domain.NursingDiagnosis {
	term := strings.ToLower(query)
	var results []domain.NursingDiagnosis
	for _, code := range r.order {
		d := r.diagnoses[code]
		if strings.Contains(strings.ToLower(d.NameEnglish), term) ||
			strings.Contains(d.NameKorean, term) ||
			strings.Contains(strings.ToLower(d.Domain.Name), term) ||
			strings.Contains(d.Domain.NameKorean, term) ||
			strings.Contains(strings.ToLower(d.Definition), term) {
			results = append(results, d)
		}
	}
	return results
}

// GetByDomain returns diagnoses whose NANDA domain matches,
// case-insensitive on the English name, exact on the Korean name.
func (r *DiagnosisRegistry) GetByDomain(nandaDomain string) []domain.NursingDiagnosis {
	var results []domain.NursingDiagnosis
	for _, code := range r.order {
		d := r.diagnoses[code]
		if strings.EqualFold(d.Domain.Name, nandaDomain) || d.Domain.NameKorean == nandaDomain {
			results = append(results, d)
		}
	}
	return results
}

// Suggest scores every diagnosis against the symptom set and returns
// the top matches. A symptom found in a defining characteristic scores
// 2 points; in a related factor or risk factor, 1 point. Diagnoses
// with a zero score are dropped, ties keep catalog order.
func (r *DiagnosisRegistry) Suggest(symptoms []string) []domain.ScoredDiagnosis {
	var scored []domain.ScoredDiagnosis
	for _, code := range r.order {
		d := r.diagnoses[code]
		score := 0
		for _, symptom := range symptoms {
			term := strings.ToLower(symptom)
			for _, char := range d.DefiningCharacteristics {
				if strings.Contains(strings.ToLower(char), term) {
					score += 2
				}
			}
			for _, factor := range d.RelatedFactors {
				if strings.Contains(strings.ToLower(factor), term) {
					score++
				}
			}
			for _, risk := range d.RiskFactors {
				if strings.Contains(strings.ToLower(risk), term) {
					score++
				}
			}
		}
		if score > 0 {
			scored = append(scored, domain.ScoredDiagnosis{Diagnosis: d, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxDiagnosisSuggestions {
		scored = scored[:maxDiagnosisSuggestions]
	}
	return scored
}

// All returns every diagnosis in catalog order.
func (r *DiagnosisRegistry) All() []domain.NursingDiagnosis {
	results := make([]domain.NursingDiagnosis, 0, len(r.order))
	for _, code := range r.order {
		results = append(results, r.diagnoses[code])
	}
	return results
}

var diagnosisCatalog = []domain.NursingDiagnosis{
	{
		ID:          "00002",
		Code:        "00002",
		NameEnglish: "Imbalanced Nutrition: Less Than Body Requirements",
		NameKorean:  "영양불균형: 신체요구량보다 적음",
		Domain:      domain.DomainClass{Name: "Nutrition", NameKorean: "영양"},
		Class:       domain.DomainClass{Name: "Ingestion", NameKorean: "섭취"},
		Definition:  "신체의 대사요구를 충족시키기에 불충분한 영양소 섭취",
		DefiningCharacteristics: []string{
			"체중이 이상체중의 20% 이상 감소",
			"음식 섭취량 부족",
			"복통",
			"근육량 감소",
			"피로감",
			"창백한 점막",
			"탈모",
		},
		RelatedFactors: []string{
			"음식 섭취 불능",
			"식욕부진",
			"오심/구토",
			"연하곤란",
			"흡수장애",
			"대사요구 증가",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"영양상태 사정 (체중, BMI, 알부민 수치)",
				"칼로리 및 단백질 섭취량 모니터링",
				"소량씩 자주 식사 제공",
				"고칼로리, 고단백 식이 제공",
				"식사 시 편안한 환경 조성",
			},
			Suggested: []string{
				"영양사 협진",
				"경관영양 또는 정맥영양 고려",
				"식욕증진제 투여",
				"구강간호 제공",
				"가족 참여 격려",
			},
		},
		ExpectedOutcomes: []string{
			"목표 체중 유지 또는 증가",
			"적절한 칼로리 섭취",
			"알부민 수치 정상화",
			"근력 증가",
			"피로감 감소",
		},
		EvaluationCriteria: []string{
			"체중 변화 추이",
			"식사 섭취량",
			"영양 관련 검사 수치",
			"활동 수준",
			"피부 및 점막 상태",
		},
	},
	{
		ID:          "00011",
		Code:        "00011",
		NameEnglish: "Constipation",
		NameKorean:  "변비",
		Domain:      domain.DomainClass{Name: "Elimination and Exchange", NameKorean: "배설과 교환"},
		Class:       domain.DomainClass{Name: "Gastrointestinal Function", NameKorean: "위장관 기능"},
		Definition:  "배변 횟수 감소와 함께 단단하고 건조한 대변의 배출곤란",
		DefiningCharacteristics: []string{
			"주 3회 미만의 배변",
			"단단한 대변",
			"배변 시 긴장",
			"불완전한 배변감",
			"복부 팽만",
			"복통",
		},
		RelatedFactors: []string{
			"불충분한 수분 섭취",
			"불충분한 섬유질 섭취",
			"활동 부족",
			"약물 부작용 (마약성 진통제, 항콜린제)",
			"배변 억제",
			"환경 변화",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"배변 양상 사정 (횟수, 양, 굳기)",
				"수분 섭취량 증가 (2-3L/일)",
				"섬유질이 풍부한 식이 제공",
				"규칙적인 배변 습관 형성",
				"활동량 증가 격려",
			},
			Suggested: []string{
				"복부 마사지",
				"온열요법",
				"완하제 투여 (의사 처방)",
				"프라이버시 보장",
				"좌욕",
			},
		},
		ExpectedOutcomes: []string{
			"규칙적인 배변 (주 3회 이상)",
			"부드러운 대변",
			"배변 시 불편감 없음",
			"복부 팽만 감소",
		},
		EvaluationCriteria: []string{
			"배변 횟수 및 양상",
			"복부 사정 결과",
			"환자의 주관적 편안감",
			"수분 및 섬유질 섭취량",
		},
	},
	{
		ID:          "00093",
		Code:        "00093",
		NameEnglish: "Fatigue",
		NameKorean:  "피로",
		Domain:      domain.DomainClass{Name: "Activity/Rest", NameKorean: "활동/휴식"},
		Class:       domain.DomainClass{Name: "Energy Balance", NameKorean: "에너지 균형"},
		Definition:  "휴식이나 수면으로 완화되지 않는 압도적이고 지속적인 탈진감과 신체적, 정신적 작업 능력의 감소",
		DefiningCharacteristics: []string{
			"지속적인 피로감 호소",
			"활동 수준 감소",
			"집중력 저하",
			"무기력",
			"일상활동 수행 곤란",
			"휴식 후에도 회복되지 않음",
		},
		RelatedFactors: []string{
			"빈혈",
			"영양부족",
			"수면장애",
			"통증",
			"우울",
			"화학요법",
			"만성질환",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"피로 수준 사정 (0-10 척도)",
				"활동과 휴식의 균형 유지",
				"에너지 보존 기법 교육",
				"우선순위에 따른 활동 계획",
				"충분한 수면 보장",
			},
			Suggested: []string{
				"점진적 운동 프로그램",
				"영양 상태 개선",
				"스트레스 관리",
				"이완요법",
				"가족 지지체계 활용",
			},
		},
		ExpectedOutcomes: []string{
			"피로 수준 감소",
			"일상활동 수행 능력 향상",
			"수면의 질 개선",
			"에너지 수준 증가",
		},
		EvaluationCriteria: []string{
			"피로 척도 점수",
			"활동 수행 정도",
			"수면 양상",
			"주관적 피로감 표현",
		},
	},
	{
		ID:          "00004",
		Code:        "00004",
		NameEnglish: "Risk for Infection",
		NameKorean:  "감염 위험성",
		Domain:      domain.DomainClass{Name: "Safety/Protection", NameKorean: "안전/보호"},
		Class:       domain.DomainClass{Name: "Infection", NameKorean: "감염"},
		Definition:  "조직 손상을 일으킬 수 있는 병원체 침입의 위험 증가",
		RiskFactors: []string{
			"면역억제 (호중구 <1000)",
			"침습적 시술",
			"피부 통합성 장애",
			"영양부족",
			"만성질환",
			"항암치료",
			"부적절한 1차 방어기전",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"감염 징후 모니터링 (발열, WBC)",
				"철저한 손위생",
				"보호격리 시행",
				"무균술 준수",
				"호중구 수치 매일 확인",
			},
			Suggested: []string{
				"방문객 제한",
				"생화/생과일 제한",
				"구강간호 강화",
				"예방적 항생제 투여",
				"환경 청결 유지",
			},
		},
		ExpectedOutcomes: []string{
			"감염 징후 없음",
			"정상 체온 유지",
			"WBC 정상 범위",
			"배양검사 음성",
		},
		EvaluationCriteria: []string{
			"활력징후",
			"혈액검사 결과",
			"감염 징후 유무",
			"상처 상태",
		},
	},
	{
		ID:          "00132",
		Code:        "00132",
		NameEnglish: "Acute Pain",
		NameKorean:  "급성 통증",
		Domain:      domain.DomainClass{Name: "Comfort", NameKorean: "안위"},
		Class:       domain.DomainClass{Name: "Physical Comfort", NameKorean: "신체적 안위"},
		Definition:  "실제적이거나 잠재적인 조직 손상과 관련된 불쾌한 감각적, 정서적 경험",
		DefiningCharacteristics: []string{
			"통증 호소",
			"통증 척도 점수 상승",
			"얼굴 찡그림",
			"보호적 자세",
			"활력징후 변화",
			"수면장애",
			"식욕부진",
		},
		RelatedFactors: []string{
			"조직 손상",
			"수술",
			"염증",
			"허혈",
			"신경 압박",
			"화학적 자극",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"통증 사정 (위치, 강도, 양상, 기간)",
				"통증 척도 사용 (0-10)",
				"진통제 투여 및 효과 평가",
				"편안한 체위 유지",
				"통증 유발 요인 제거",
			},
			Suggested: []string{
				"비약물적 통증 완화법 (냉/온요법, 마사지)",
				"이완요법",
				"주의전환",
				"PCA 교육",
				"통증일지 작성",
			},
		},
		ExpectedOutcomes: []string{
			"통증 점수 3점 이하",
			"일상활동 수행 가능",
			"수면 양상 개선",
			"진통제 요구 감소",
		},
		EvaluationCriteria: []string{
			"통증 척도 점수 변화",
			"진통제 사용량",
			"활동 수준",
			"환자 만족도",
		},
	},
	{
		ID:          "00146",
		Code:        "00146",
		NameEnglish: "Anxiety",
		NameKorean:  "불안",
		Domain:      domain.DomainClass{Name: "Coping/Stress Tolerance", NameKorean: "대응/스트레스 내성"},
		Class:       domain.DomainClass{Name: "Coping Responses", NameKorean: "대응 반응"},
		Definition:  "불확실한 위협에 대한 막연한 불편감이나 두려움과 자율신경계 반응",
		DefiningCharacteristics: []string{
			"불안감 표현",
			"초조",
			"집중력 저하",
			"수면장애",
			"심계항진",
			"발한",
			"떨림",
			"호흡곤란",
		},
		RelatedFactors: []string{
			"건강상태 변화",
			"죽음 위협",
			"상황적 위기",
			"스트레스",
			"미지의 것에 대한 두려움",
			"통제력 상실",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"불안 수준 사정",
				"치료적 의사소통",
				"경청과 공감",
				"정확한 정보 제공",
				"안전한 환경 조성",
			},
			Suggested: []string{
				"이완요법 교육",
				"심호흡 운동",
				"점진적 근육이완법",
				"가족 지지 격려",
				"항불안제 투여",
			},
		},
		ExpectedOutcomes: []string{
			"불안 수준 감소",
			"대처 기전 사용",
			"수면 개선",
			"자율신경계 증상 감소",
		},
		EvaluationCriteria: []string{
			"불안 척도 점수",
			"활력징후",
			"수면 양상",
			"대처 행동",
		},
	},
	{
		ID:          "00155",
		Code:        "00155",
		NameEnglish: "Risk for Falls",
		NameKorean:  "낙상 위험성",
		Domain:      domain.DomainClass{Name: "Safety/Protection", NameKorean: "안전/보호"},
		Class:       domain.DomainClass{Name: "Physical Injury", NameKorean: "신체 손상"},
		Definition:  "신체적 손상을 일으킬 수 있는 낙상의 위험 증가",
		RiskFactors: []string{
			"65세 이상",
			"낙상 과거력",
			"보행 장애",
			"균형감각 저하",
			"근력 약화",
			"의식 수준 변화",
			"시력 장애",
			"기립성 저혈압",
			"다약제 복용",
			"환경적 위험요인",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"낙상 위험 사정도구 사용",
				"고위험 환자 식별 (팔찌, 표식)",
				"침상 난간 올리기",
				"호출벨 가까이 배치",
				"미끄럼 방지 신발 착용",
			},
			Suggested: []string{
				"야간 조명 제공",
				"화장실 다녀올 때 도움",
				"규칙적인 라운딩",
				"약물 부작용 모니터링",
				"물리치료 의뢰",
			},
		},
		ExpectedOutcomes: []string{
			"낙상 발생 없음",
			"안전 수칙 준수",
			"보조기구 적절히 사용",
			"환경적 위험요인 제거",
		},
		EvaluationCriteria: []string{
			"낙상 발생 여부",
			"낙상 위험도 점수",
			"안전 행동 이행",
			"보행 능력",
		},
	},
	{
		ID:          "00027",
		Code:        "00027",
		NameEnglish: "Deficient Fluid Volume",
		NameKorean:  "체액부족",
		Domain:      domain.DomainClass{Name: "Nutrition", NameKorean: "영양"},
		Class:       domain.DomainClass{Name: "Hydration", NameKorean: "수분"},
		Definition:  "혈관내, 세포간질, 세포내 체액의 감소",
		DefiningCharacteristics: []string{
			"피부 탄력성 감소",
			"구강 점막 건조",
			"소변량 감소",
			"비중 증가",
			"빈맥",
			"저혈압",
			"체중 감소",
			"허약감",
		},
		RelatedFactors: []string{
			"구토/설사",
			"출혈",
			"과도한 발한",
			"불충분한 수분 섭취",
			"이뇨제 사용",
			"발열",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"I&O 정확히 측정",
				"체중 매일 측정",
				"활력징후 모니터링",
				"피부 탄력성 사정",
				"IV 수액 투여",
			},
			Suggested: []string{
				"구강 수분 섭취 격려",
				"전해질 수치 모니터링",
				"기립성 저혈압 확인",
				"소변 비중 측정",
				"구강간호",
			},
		},
		ExpectedOutcomes: []string{
			"정상 체액 균형",
			"활력징후 안정",
			"적절한 소변량 (0.5-1ml/kg/hr)",
			"정상 피부 탄력성",
		},
		EvaluationCriteria: []string{
			"I&O 균형",
			"체중 변화",
			"활력징후",
			"검사 결과 (전해질, Hct)",
		},
	},
	{
		ID:          "00013",
		Code:        "00013",
		NameEnglish: "Diarrhea",
		NameKorean:  "설사",
		Domain:      domain.DomainClass{Name: "Elimination and Exchange", NameKorean: "배설과 교환"},
		Class:       domain.DomainClass{Name: "Gastrointestinal Function", NameKorean: "위장관 기능"},
		Definition:  "묽은 변을 자주 배출하는 상태",
		DefiningCharacteristics: []string{
			"하루 3회 이상의 묽은 변",
			"복부 경련",
			"긴박감",
			"복통",
			"장음 항진",
		},
		RelatedFactors: []string{
			"감염",
			"약물 부작용",
			"경관영양",
			"스트레스/불안",
			"염증성 장질환",
			"흡수장애",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"배변 양상 기록 (횟수, 양, 성상)",
				"수분 및 전해질 보충",
				"BRAT 식이 제공",
				"항문 주위 피부 간호",
				"원인 약물 확인",
			},
			Suggested: []string{
				"대변 배양검사",
				"프로바이오틱스 투여",
				"지사제 투여",
				"저잔사 식이",
				"스트레스 관리",
			},
		},
		ExpectedOutcomes: []string{
			"정상 배변 양상 회복",
			"체액 균형 유지",
			"복부 불편감 감소",
			"피부 통합성 유지",
		},
		EvaluationCriteria: []string{
			"배변 횟수 및 양상",
			"수분 상태",
			"전해질 수치",
			"체중 변화",
		},
	},
	{
		ID:          "00085",
		Code:        "00085",
		NameEnglish: "Impaired Physical Mobility",
		NameKorean:  "신체 기동성 장애",
		Domain:      domain.DomainClass{Name: "Activity/Rest", NameKorean: "활동/휴식"},
		Class:       domain.DomainClass{Name: "Activity/Exercise", NameKorean: "활동/운동"},
		Definition:  "독립적이고 목적 있는 신체 움직임의 제한",
		DefiningCharacteristics: []string{
			"움직임 범위 제한",
			"보행 곤란",
			"체위 변경 곤란",
			"미세 운동 조절 감소",
			"움직임 속도 감소",
		},
		RelatedFactors: []string{
			"근골격계 손상",
			"신경근육 손상",
			"통증",
			"인지 장애",
			"약물 부작용",
			"활동 제한 처방",
		},
		Interventions: domain.Interventions{
			Priority: []string{
				"기동성 수준 사정",
				"ROM 운동 시행",
				"2시간마다 체위변경",
				"조기 이상 격려",
				"보조기구 사용 교육",
			},
			Suggested: []string{
				"물리치료 의뢰",
				"근력 강화 운동",
				"낙상 예방 조치",
				"피부 통합성 유지",
				"심부정맥혈전증 예방",
			},
		},
		ExpectedOutcomes: []string{
			"기동성 수준 향상",
			"독립적 활동 증가",
			"합병증 없음",
			"근력 유지",
		},
		EvaluationCriteria: []string{
			"활동 수준",
			"ROM 범위",
			"보조기구 사용 능력",
			"합병증 유무",
		},
	},
}
