package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/registry"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress logs during testing
	return logger
}

func TestKnowledgeService_Query(t *testing.T) {
	ctx := context.Background()
	svc := NewKnowledgeService(
		testLogger(),
		registry.NewMedicationRegistry(),
		registry.NewLabValueRegistry(),
		registry.NewDiagnosisRegistry(),
		registry.NewProtocolRegistry(),
		registry.NewKnowledgeStore(),
	)

	t.Run("Medication_Topic_Routes_To_Registry", func(t *testing.T) {
		answer, err := svc.Query(ctx, "항암 약물", domain.LevelBasic, "")
		require.NoError(t, err)
		assert.Equal(t, domain.KindMedications, answer.Kind)
		assert.Nil(t, answer.Topic)
	})

	t.Run("Lab_Topic_Routes_To_Registry", func(t *testing.T) {
		answer, err := svc.Query(ctx, "칼륨", domain.LevelBasic, "")
		require.NoError(t, err)
		assert.Equal(t, domain.KindTopic, answer.Kind)

		answer, err = svc.Query(ctx, "칼륨 수치", domain.LevelBasic, "")
		require.NoError(t, err)
		assert.Equal(t, domain.KindLabValues, answer.Kind)
	})

	t.Run("Diagnosis_Keyword_Wins_Over_Protocol", func(t *testing.T) {
		answer, err := svc.Query(ctx, "간호진단 프로토콜", domain.LevelBasic, "")
		require.NoError(t, err)
		assert.Equal(t, domain.KindDiagnoses, answer.Kind)
	})

	t.Run("Curated_Topic_Lookup", func(t *testing.T) {
		answer, err := svc.Query(ctx, "종양간호", domain.LevelAdvanced, "")
		require.NoError(t, err)
		assert.Equal(t, domain.KindTopic, answer.Kind)
		require.NotNil(t, answer.Topic)
		assert.NotEmpty(t, answer.Topic.AdvancedConcepts)
	})

	t.Run("Unknown_Topic_Falls_Back", func(t *testing.T) {
		answer, err := svc.Query(ctx, "아동간호", domain.LevelBasic, "")
		require.NoError(t, err)
		require.NotNil(t, answer.Topic)
		assert.Contains(t, answer.Topic.Title, "아동간호")
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.Query(ctx, "", domain.LevelBasic, "")
		assert.Error(t, err)

		_, err = svc.Query(ctx, "간호과정", "expert", "")
		assert.Error(t, err)
	})
}

func TestCaseAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()
	analyzer := NewCaseAnalyzer(
		testLogger(),
		registry.NewMedicationRegistry(),
		registry.NewLabValueRegistry(),
		registry.NewDiagnosisRegistry(),
	)

	patient := domain.PatientInfo{
		Age:       70,
		Gender:    "male",
		Diagnosis: "유방암",
		Stage:     "II",
	}
	symptoms := []string{"통증", "발열", "낯선 증상"}

	t.Run("Oncology_Case", func(t *testing.T) {
		analysis, err := analyzer.Analyze(ctx, patient, symptoms, domain.ContextOncology)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(analysis.PatientSummary, "70세 남성 환자"))
		assert.Contains(t, analysis.PatientSummary, "진단: 유방암")

		require.Len(t, analysis.SymptomAnalysis, 3)
		assert.Equal(t, "통증", analysis.SymptomAnalysis[0].Symptom)
		assert.NotEqual(t, unknownSymptomExplanation, analysis.SymptomAnalysis[0].Explanation)
		assert.Equal(t, unknownSymptomExplanation, analysis.SymptomAnalysis[2].Explanation)

		medIDs := make([]string, 0, len(analysis.RelevantMedications))
		for _, m := range analysis.RelevantMedications {
			medIDs = append(medIDs, m.ID)
		}
		assert.Contains(t, medIDs, "morphine")
		assert.Contains(t, medIDs, "cyclophosphamide")

		labIDs := make([]string, 0, len(analysis.RelevantLabs))
		for _, l := range analysis.RelevantLabs {
			labIDs = append(labIDs, l.ID)
		}
		assert.Contains(t, labIDs, "hemoglobin")
		assert.Contains(t, labIDs, "wbc")
		assert.Contains(t, labIDs, "platelet")
		assert.Contains(t, labIDs, "alt")

		require.NotEmpty(t, analysis.PossibleDiagnoses)
		assert.Equal(t, "00132", analysis.PossibleDiagnoses[0].Diagnosis.ID)

		assert.Contains(t, analysis.RiskFactors, "고령으로 인한 합병증 위험")
		assert.Contains(t, analysis.RiskFactors, "면역 억제로 인한 감염 위험")
		assert.NotEmpty(t, analysis.NursingPriorities)
		assert.NotEmpty(t, analysis.RecommendedInterventions)
		assert.NotEmpty(t, analysis.MonitoringParameters)
		assert.NotEmpty(t, analysis.PatientEducation)
		assert.NotEmpty(t, analysis.ExpectedOutcomes)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := analyzer.Analyze(ctx, domain.PatientInfo{Age: 30}, symptoms, domain.ContextGeneral)
		assert.Error(t, err)

		_, err = analyzer.Analyze(ctx, patient, nil, domain.ContextGeneral)
		assert.Error(t, err)
	})
}

func TestLabInterpreter_Interpret(t *testing.T) {
	interp := NewLabInterpreter(testLogger(), registry.NewLabValueRegistry())

	t.Run("Gender_Range", func(t *testing.T) {
		assert.Equal(t, "낮음 (정상: 13.5-17.5 g/dL)", interp.Interpret("hemoglobin", 10, "male"))
		assert.Equal(t, "정상 (12.0-16.0 g/dL)", interp.Interpret("hemoglobin", 13, "female"))
	})

	t.Run("General_Range", func(t *testing.T) {
		assert.Equal(t, "높음 (정상: 3.5-5.0 mEq/L)", interp.Interpret("potassium", 6.1, ""))
		assert.Equal(t, "정상 (3.5-5.0 mEq/L)", interp.Interpret("potassium", 4.0, "male"))
	})

	t.Run("Unknown_Test", func(t *testing.T) {
		assert.Equal(t, interpUnknownTest, interp.Interpret("ferritin", 50, ""))
	})

	t.Run("Threshold_Only_Range", func(t *testing.T) {
		// "<0.04 ng/mL" carries no low-high pair to classify against.
		assert.Equal(t, interpUnknownRange, interp.Interpret("troponin", 0.1, ""))
	})
}

func TestLabInterpreter_CriticalAlerts(t *testing.T) {
	interp := NewLabInterpreter(testLogger(), registry.NewLabValueRegistry())

	t.Run("Critical_Low", func(t *testing.T) {
		alerts := interp.CriticalAlerts("potassium", 2.0)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "칼륨 수치가 매우 낮습니다")
	})

	t.Run("Critical_High", func(t *testing.T) {
		alerts := interp.CriticalAlerts("potassium", 7.0)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "칼륨 수치가 매우 높습니다")
	})

	t.Run("Within_Bounds", func(t *testing.T) {
		assert.Empty(t, interp.CriticalAlerts("potassium", 4.0))
		assert.Empty(t, interp.CriticalAlerts("ferritin", 1.0))
	})

	t.Run("Hemoglobin_Thresholds", func(t *testing.T) {
		// 8.5 is below the male normal range yet above the critical
		// floor of 7.0, so it interprets low without alerting.
		assert.Empty(t, interp.CriticalAlerts("hemoglobin", 8.5))

		alerts := interp.CriticalAlerts("hemoglobin", 6.0)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "헤모글로빈 수치가 매우 낮습니다")
	})
}

func TestCarePlanComposer_Compose(t *testing.T) {
	ctx := context.Background()
	composer := NewCarePlanComposer(testLogger())

	t.Run("Curated_And_Unknown_Labels", func(t *testing.T) {
		plan, err := composer.Compose(ctx, []string{"피로", "급성 통증", "알 수 없는 진단"}, nil, nil)
		require.NoError(t, err)

		require.Len(t, plan.DiagnosisAnalysis, 3)
		assert.Equal(t, "활동/휴식 간호진단", plan.DiagnosisAnalysis[0].Category)
		assert.Equal(t, "기타", plan.DiagnosisAnalysis[2].Category)
		assert.Equal(t, domain.PriorityMedium, plan.DiagnosisAnalysis[2].PriorityLevel)

		// Unknown labels contribute nothing to the curated sections.
		assert.Len(t, plan.Goals, 2)
		assert.Len(t, plan.Rationale, 2)
		assert.Len(t, plan.EvaluationCriteria, 2)
		assert.NotEmpty(t, plan.Interventions)

		// Every label gets a timeframe, unknown ones a fallback.
		require.Len(t, plan.Timeframes, 3)
		assert.Equal(t, fallbackTimeframe, plan.Timeframes[2].Timeframe)

		// High before medium, ties in input order.
		require.Len(t, plan.PriorityRanking, 3)
		assert.Equal(t, "급성 통증", plan.PriorityRanking[0].Diagnosis)
		assert.Equal(t, domain.PriorityHigh, plan.PriorityRanking[0].Priority)
		assert.Equal(t, "피로", plan.PriorityRanking[1].Diagnosis)
		assert.Equal(t, "알 수 없는 진단", plan.PriorityRanking[2].Diagnosis)
	})

	t.Run("Supplied_Goals_And_Interventions_Replace_Defaults", func(t *testing.T) {
		goals := []string{"통증 점수 3점 이하 유지"}
		interventions := []string{"온찜질 적용"}
		plan, err := composer.Compose(ctx, []string{"급성 통증"}, goals, interventions)
		require.NoError(t, err)
		assert.Equal(t, goals, plan.Goals)
		assert.Equal(t, interventions, plan.Interventions)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := composer.Compose(ctx, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestResearchService_Query(t *testing.T) {
	ctx := context.Background()
	svc := NewResearchService(testLogger())

	t.Run("Oncology_Area", func(t *testing.T) {
		summary, err := svc.Query(ctx, AreaOncology, "immunotherapy nursing", "")
		require.NoError(t, err)

		assert.Equal(t, "all", summary.EvidenceLevel)
		assert.Contains(t, summary.Summary, "immunotherapy nursing")
		require.NotEmpty(t, summary.RecentStudies)
		assert.Contains(t, summary.RecentStudies[0].Title, "Immunotherapy")
		assert.Len(t, summary.KeyFindings, 4)
		assert.Len(t, summary.Recommendations, 4)
	})

	t.Run("Evidence_Level_Filter", func(t *testing.T) {
		summary, err := svc.Query(ctx, AreaOncology, "therapy", "case_study")
		require.NoError(t, err)
		require.Len(t, summary.RecentStudies, 1)
		assert.Equal(t, "CAR-T Cell Therapy: Nursing Care Considerations", summary.RecentStudies[0].Title)
	})

	t.Run("Unseeded_Area_Falls_Back", func(t *testing.T) {
		summary, err := svc.Query(ctx, "pediatrics", "연구 동향", "")
		require.NoError(t, err)
		require.Len(t, summary.RecentStudies, 1)
		assert.Contains(t, summary.RecentStudies[0].Title, "pediatrics")
		assert.Contains(t, summary.Summary, "간호 실무의 지속적인 발전")
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.Query(ctx, "", "query", "")
		assert.Error(t, err)

		_, err = svc.Query(ctx, AreaGenetics, "", "")
		assert.Error(t, err)
	})
}

func TestNoteComposer_Compose(t *testing.T) {
	ctx := context.Background()

	t.Run("Daily_Note_Written_To_Vault", func(t *testing.T) {
		vault := t.TempDir()
		composer := NewNoteComposer(testLogger(), vault)

		note, err := composer.Compose(ctx, domain.NoteDaily, "오늘은 수액 요법을 복습했다.", []string{"수액요법"})
		require.NoError(t, err)

		assert.Empty(t, note.Warning)
		assert.Equal(t, vault, filepath.Dir(note.Path))
		assert.True(t, strings.HasSuffix(note.Filename, ".md"))
		assert.Contains(t, note.Filename, "-daily-")

		written, err := os.ReadFile(note.Path)
		require.NoError(t, err)
		text := string(written)
		assert.Contains(t, text, "tags: [수액요법, nursing, daily]")
		assert.Contains(t, text, "# 일일 학습 노트")
		assert.Contains(t, text, "오늘은 수액 요법을 복습했다.")
		assert.Contains(t, text, "## 🎯 복습 계획")

		assert.True(t, strings.HasPrefix(note.Preview, "[일일 학습]"))
	})

	t.Run("Preview_Truncates_Long_Content", func(t *testing.T) {
		composer := NewNoteComposer(testLogger(), t.TempDir())
		note, err := composer.Compose(ctx, domain.NoteConcept, strings.Repeat("가", 300), nil)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(note.Preview, "..."))
	})

	t.Run("Validation", func(t *testing.T) {
		composer := NewNoteComposer(testLogger(), t.TempDir())

		_, err := composer.Compose(ctx, domain.NoteType("journal"), "내용", nil)
		assert.Error(t, err)

		_, err = composer.Compose(ctx, domain.NoteDaily, "", nil)
		assert.Error(t, err)
	})
}
