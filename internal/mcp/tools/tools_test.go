package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nursing-tutor-mcp-server/internal/cache"
	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/progress"
	"github.com/nursing-tutor-mcp-server/internal/registry"
	"github.com/nursing-tutor-mcp-server/internal/service"
)

// nullStore is a progress.Store that drops everything. Persistence has
// its own tests in the progress package.
type nullStore struct{}

func (nullStore) SaveRecord(ctx context.Context, record *domain.ProgressRecord) error { return nil }
func (nullStore) ListRecords(ctx context.Context, learnerID string) ([]*domain.ProgressRecord, error) {
	return nil, nil
}
func (nullStore) SaveMilestone(ctx context.Context, learnerID string, milestone *domain.Milestone) error {
	return nil
}
func (nullStore) ListMilestones(ctx context.Context, learnerID string) ([]*domain.Milestone, error) {
	return nil, nil
}
func (nullStore) Close() error { return nil }

func toolRequest(params interface{}) *protocol.JSONRPC2Request {
	return &protocol.JSONRPC2Request{
		JSONRPC: "2.0",
		Method:  "tool_call",
		Params:  params,
		ID:      1,
	}
}

// resultText extracts the rendered markdown from a text tool response.
func resultText(t *testing.T, resp *protocol.JSONRPC2Response) string {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error response: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatalf("unexpected content shape %v", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatalf("content entry has no text: %v", content[0])
	}
	return text
}

func assertInvalidParams(t *testing.T, resp *protocol.JSONRPC2Response) {
	t.Helper()

	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != protocol.InvalidParams {
		t.Fatalf("expected InvalidParams, got %d", resp.Error.Code)
	}
}

func newKnowledgeTool(t *testing.T) *NursingKnowledgeTool {
	t.Helper()
	logger, _ := test.NewNullLogger()
	svc := service.NewKnowledgeService(
		logger,
		registry.NewMedicationRegistry(),
		registry.NewLabValueRegistry(),
		registry.NewDiagnosisRegistry(),
		registry.NewProtocolRegistry(),
		registry.NewKnowledgeStore(),
	)
	return NewNursingKnowledgeTool(logger, svc)
}

func TestNursingKnowledgeTool(t *testing.T) {
	tool := newKnowledgeTool(t)
	ctx := context.Background()

	t.Run("Topic_Lookup", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"topic": "종양간호",
			"level": "basic",
		}))

		text := resultText(t, resp)
		if !strings.HasPrefix(text, "# ") {
			t.Errorf("expected markdown heading, got %q", text[:20])
		}
		if !strings.Contains(text, "## 🎯 기본 개념") {
			t.Error("basic level output missing 기본 개념 section")
		}
		if !strings.Contains(text, "## 📝 학습 포인트") {
			t.Error("output missing 학습 포인트 section")
		}
	})

	t.Run("Medication_Dispatch_No_Match", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"topic": "희귀 약물",
			"level": "basic",
		}))

		text := resultText(t, resp)
		if !strings.Contains(text, "약물 정보를 찾을 수 없습니다") {
			t.Errorf("expected not-found message, got %q", text)
		}
	})

	t.Run("Specialty_Augmentation", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"topic":     "종양간호",
			"level":     "advanced",
			"specialty": "oncology",
		}))

		text := resultText(t, resp)
		if !strings.Contains(text, "## 🎓 전문 분야 심화") {
			t.Error("specialty section missing from output")
		}
	})

	t.Run("Missing_Topic", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"level": "basic",
		}))
		assertInvalidParams(t, resp)
	})

	t.Run("Invalid_Level", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"topic": "종양간호",
			"level": "expert",
		}))
		assertInvalidParams(t, resp)
	})

	t.Run("Nil_Params", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(nil))
		assertInvalidParams(t, resp)
	})
}

func TestRenderKnowledgeAnswer_Medications(t *testing.T) {
	medications := registry.NewMedicationRegistry()
	found := medications.Search("모르핀")
	if len(found) == 0 {
		t.Fatal("expected 모르핀 in the medication registry")
	}

	text := renderKnowledgeAnswer(&domain.KnowledgeAnswer{
		Kind:        domain.KindMedications,
		Query:       "모르핀",
		Medications: found,
	})

	if !strings.HasPrefix(text, "# 💊 약물 정보 검색 결과") {
		t.Errorf("unexpected header: %q", text[:40])
	}
	if !strings.Contains(text, "모르핀") {
		t.Error("medication name missing from output")
	}
}

func newCaseTool(t *testing.T) *ClinicalCaseTool {
	t.Helper()
	logger, _ := test.NewNullLogger()
	analyzer := service.NewCaseAnalyzer(
		logger,
		registry.NewMedicationRegistry(),
		registry.NewLabValueRegistry(),
		registry.NewDiagnosisRegistry(),
	)
	return NewClinicalCaseTool(logger, analyzer)
}

func TestClinicalCaseTool(t *testing.T) {
	tool := newCaseTool(t)
	ctx := context.Background()

	validParams := func() map[string]interface{} {
		return map[string]interface{}{
			"patient_info": map[string]interface{}{
				"age":       67,
				"gender":    "female",
				"diagnosis": "유방암",
			},
			"symptoms": []string{"통증", "불안"},
			"context":  "oncology",
		}
	}

	t.Run("Full_Analysis", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(validParams()))

		text := resultText(t, resp)
		for _, section := range []string{
			"# 📋 임상 사례 분석",
			"## 👤 환자 정보",
			"## 🔍 증상 분석",
			"## 🎯 간호 우선순위",
			"## 📊 모니터링 지표",
			"*분석 완료 시간:",
		} {
			if !strings.Contains(text, section) {
				t.Errorf("output missing section %q", section)
			}
		}
		if !strings.Contains(text, "- 통증:") {
			t.Error("symptom explanation for 통증 missing")
		}
	})

	t.Run("Default_Context", func(t *testing.T) {
		params := validParams()
		delete(params, "context")

		resp := tool.HandleTool(ctx, toolRequest(params))
		resultText(t, resp)
	})

	t.Run("Invalid_Gender", func(t *testing.T) {
		params := validParams()
		params["patient_info"].(map[string]interface{})["gender"] = "other"

		resp := tool.HandleTool(ctx, toolRequest(params))
		assertInvalidParams(t, resp)
	})

	t.Run("Missing_Symptoms", func(t *testing.T) {
		params := validParams()
		delete(params, "symptoms")

		resp := tool.HandleTool(ctx, toolRequest(params))
		assertInvalidParams(t, resp)
	})

	t.Run("Unknown_Context", func(t *testing.T) {
		params := validParams()
		params["context"] = "hospice"

		resp := tool.HandleTool(ctx, toolRequest(params))
		assertInvalidParams(t, resp)
	})
}

func TestCarePlanTool(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tool := NewCarePlanTool(logger, service.NewCarePlanComposer(logger))
	ctx := context.Background()

	t.Run("Known_Diagnosis", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"nursing_diagnosis": []string{"급성 통증"},
		}))

		text := resultText(t, resp)
		for _, section := range []string{
			"# 📋 간호계획서",
			"## 📊 간호진단 분석",
			"## 🎯 환자 목표",
			"## ⏰ 시간계획",
			"## 🎯 우선순위 순서",
			"*다음 평가 예정:",
		} {
			if !strings.Contains(text, section) {
				t.Errorf("output missing section %q", section)
			}
		}
		if !strings.Contains(text, "급성 통증 (high)") {
			t.Error("급성 통증 should rank with high priority")
		}
	})

	t.Run("Caller_Goals_Verbatim", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"nursing_diagnosis": []string{"급성 통증"},
			"patient_goals":     []string{"퇴원 전 자가 통증 관리 교육 이수"},
		}))

		text := resultText(t, resp)
		if !strings.Contains(text, "퇴원 전 자가 통증 관리 교육 이수") {
			t.Error("caller-supplied goal missing from output")
		}
	})

	t.Run("Missing_Diagnosis", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"nursing_diagnosis": []string{},
		}))
		assertInvalidParams(t, resp)
	})
}

func TestObsidianNoteTool(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tool := NewObsidianNoteTool(logger, service.NewNoteComposer(logger, t.TempDir()))
	ctx := context.Background()

	t.Run("Concept_Note", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"note_type": "concept",
			"content":   "항암제 부작용 간호",
			"tags":      []string{"oncology"},
		}))

		text := resultText(t, resp)
		if !strings.HasPrefix(text, "✅ 옵시디언 노트가 생성되었습니다!") {
			t.Errorf("unexpected response prefix: %q", text[:40])
		}
		if !strings.Contains(text, "**파일명**:") {
			t.Error("filename line missing")
		}
		if !strings.Contains(text, "노트가 성공적으로 생성되어 옵시디언 볼트에 저장되었습니다.") {
			t.Error("success closing line missing")
		}
		if strings.Contains(text, "⚠️ **주의**") {
			t.Error("warning line present on a successful vault write")
		}
	})

	t.Run("Invalid_Note_Type", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"note_type": "journal",
			"content":   "내용",
		}))
		assertInvalidParams(t, resp)
	})

	t.Run("Missing_Content", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"note_type": "daily",
		}))
		assertInvalidParams(t, resp)
	})
}

func TestResearchAssistantTool(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tool := NewResearchAssistantTool(logger, service.NewResearchService(logger))
	ctx := context.Background()

	t.Run("Oncology_Query", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"research_area": "oncology",
			"query":         "면역치료",
		}))

		text := resultText(t, resp)
		for _, section := range []string{
			"# 🔬 연구 보조 결과",
			"## 📊 검색 정보",
			"- **검색 쿼리**: \"면역치료\"",
			"## 📝 연구 요약",
			"## 💡 권장사항",
			"*다음 업데이트:",
		} {
			if !strings.Contains(text, section) {
				t.Errorf("output missing section %q", section)
			}
		}
	})

	t.Run("Evidence_Level_Filter", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"research_area":  "clinical_trial",
			"query":          "임상시험 간호",
			"evidence_level": "rct",
		}))
		resultText(t, resp)
	})

	t.Run("Invalid_Area", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"research_area": "pharmacology",
			"query":         "약물",
		}))
		assertInvalidParams(t, resp)
	})

	t.Run("Invalid_Evidence_Level", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"research_area":  "genetics",
			"query":          "유전자 치료",
			"evidence_level": "anecdote",
		}))
		assertInvalidParams(t, resp)
	})
}

func TestStudySessionTool(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracker := progress.NewTracker(logger, nullStore{})
	tool := NewStudySessionTool(logger, tracker)
	ctx := context.Background()

	t.Run("Completed_Session", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":            "learner-1",
			"module":                "oncology",
			"topic":                 "암생물학",
			"completion_percentage": 100,
			"score":                 90,
			"difficulty_rating":     3,
			"confidence_level":      4,
		}))

		text := resultText(t, resp)
		if !strings.HasPrefix(text, "✅ 학습 세션이 기록되었습니다!") {
			t.Errorf("unexpected response prefix: %q", text[:40])
		}
		if !strings.Contains(text, "**점수**: 90점") {
			t.Error("score line missing")
		}
		if !strings.Contains(text, "**전체 진도**:") {
			t.Error("overall progress line missing")
		}

		records := tracker.Records("learner-1")
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].EndTime == nil {
			t.Error("completed session must close its record")
		}
		if records[0].Score == nil || *records[0].Score != 90 {
			t.Errorf("score not carried to record: %v", records[0].Score)
		}
	})

	t.Run("Partial_Session", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":            "learner-2",
			"module":                "fundamentals",
			"topic":                 "간호과정",
			"completion_percentage": 40,
		}))

		resultText(t, resp)

		records := tracker.Records("learner-2")
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].EndTime != nil {
			t.Error("partial session must stay open")
		}
		if records[0].CompletionPercentage != 40 {
			t.Errorf("completion = %d", records[0].CompletionPercentage)
		}
	})

	t.Run("Out_Of_Range_Completion", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":            "learner-1",
			"module":                "oncology",
			"topic":                 "암생물학",
			"completion_percentage": 150,
		}))
		assertInvalidParams(t, resp)
	})

	t.Run("Missing_Learner", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"module": "oncology",
			"topic":  "암생물학",
		}))
		assertInvalidParams(t, resp)
	})
}

func TestLearningProgressTool(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracker := progress.NewTracker(logger, nullStore{})
	analyzer := progress.NewAnalyzer(logger)
	profiles := progress.NewProfileManager(logger)
	paths := progress.NewPathEngine(logger)
	sessionTool := NewStudySessionTool(logger, tracker)
	tool := NewLearningProgressTool(logger, tracker, analyzer, profiles, paths)
	ctx := context.Background()

	// Seed one completed session.
	sessionTool.HandleTool(ctx, toolRequest(map[string]interface{}{
		"learner_id":            "learner-1",
		"module":                "oncology",
		"topic":                 "암생물학",
		"completion_percentage": 100,
		"score":                 85,
		"difficulty_rating":     3,
		"confidence_level":      4,
	}))

	t.Run("Summary_Only", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id": "learner-1",
		}))

		text := resultText(t, resp)
		if !strings.Contains(text, "# 📈 학습 진도 리포트") {
			t.Error("report header missing")
		}
		if !strings.Contains(text, "## 📚 진행 중인 모듈") {
			t.Error("active modules section missing")
		}
		if strings.Contains(text, "## 💪 강점") {
			t.Error("analysis sections should be omitted without include_analysis")
		}
	})

	t.Run("With_Analysis", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":       "learner-1",
			"include_analysis": true,
		}))

		text := resultText(t, resp)
		for _, section := range []string{
			"## 💪 강점",
			"## 📌 보완이 필요한 영역",
			"## 💡 학습 권장사항",
			"## 🚀 다음 단계",
		} {
			if !strings.Contains(text, section) {
				t.Errorf("output missing section %q", section)
			}
		}
	})

	t.Run("With_Learning_Path", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":            "learner-1",
			"include_learning_path": true,
		}))

		text := resultText(t, resp)
		if !strings.Contains(text, "## 🗺️ 개인화된 학습 경로") {
			t.Error("learning path section missing")
		}
		if !strings.Contains(text, "fundamentals → adult_nursing → oncology") {
			t.Error("recommended sequence missing")
		}
		if !strings.Contains(text, "**현재 모듈**: fundamentals") {
			t.Error("current module missing")
		}

		// An unknown learner gets a default profile on the fly.
		if _, ok := profiles.Get("learner-1"); !ok {
			t.Error("profile not created for the learner")
		}

		// A second call reuses the same path instead of regenerating.
		first, _ := paths.Get("learner-1")
		tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id":            "learner-1",
			"include_learning_path": true,
		}))
		second, _ := paths.Get("learner-1")
		if first.PathID != second.PathID {
			t.Errorf("path regenerated: %s != %s", first.PathID, second.PathID)
		}
	})

	t.Run("Without_Learning_Path", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{
			"learner_id": "learner-2",
		}))

		text := resultText(t, resp)
		if strings.Contains(text, "## 🗺️ 개인화된 학습 경로") {
			t.Error("path section should be omitted without include_learning_path")
		}
		if _, ok := profiles.Get("learner-2"); ok {
			t.Error("profile should not be created without include_learning_path")
		}
	})

	t.Run("Missing_Learner", func(t *testing.T) {
		resp := tool.HandleTool(ctx, toolRequest(map[string]interface{}{}))
		assertInvalidParams(t, resp)
	})
}

func newTestRegistry(t *testing.T) *ToolRegistry {
	t.Helper()
	logger, _ := test.NewNullLogger()
	router := protocol.NewMessageRouter(logger)

	return NewToolRegistry(logger, router, Services{
		Knowledge: service.NewKnowledgeService(
			logger,
			registry.NewMedicationRegistry(),
			registry.NewLabValueRegistry(),
			registry.NewDiagnosisRegistry(),
			registry.NewProtocolRegistry(),
			registry.NewKnowledgeStore(),
		),
		Cases: service.NewCaseAnalyzer(
			logger,
			registry.NewMedicationRegistry(),
			registry.NewLabValueRegistry(),
			registry.NewDiagnosisRegistry(),
		),
		CarePlans: service.NewCarePlanComposer(logger),
		Notes:     service.NewNoteComposer(logger, t.TempDir()),
		Research:  service.NewResearchService(logger),
		Tracker:   progress.NewTracker(logger, nullStore{}),
		Analyzer:  progress.NewAnalyzer(logger),
		Profiles:  progress.NewProfileManager(logger),
		Paths:     progress.NewPathEngine(logger),
	})
}

func TestToolRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	if err := reg.RegisterAllTools(); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}

	t.Run("All_Tools_Registered", func(t *testing.T) {
		info := reg.GetRegisteredToolsInfo()
		if len(info) != 7 {
			t.Fatalf("expected 7 registered tools, got %d", len(info))
		}

		names := make(map[string]bool, len(info))
		for _, toolInfo := range info {
			names[toolInfo.Name] = true
			if toolInfo.Description == "" {
				t.Errorf("tool %s has no description", toolInfo.Name)
			}
			if toolInfo.InputSchema == nil {
				t.Errorf("tool %s has no input schema", toolInfo.Name)
			}
		}

		for _, name := range []string{
			"get_nursing_knowledge",
			"analyze_clinical_case",
			"generate_care_plan",
			"obsidian_integration",
			"research_assistant",
			"record_study_session",
			"get_learning_progress",
		} {
			if !names[name] {
				t.Errorf("tool %s not registered", name)
			}
		}
	})

	t.Run("ExecuteTool_Routes", func(t *testing.T) {
		resp := reg.ExecuteTool(ctx, &protocol.JSONRPC2Request{
			JSONRPC: "2.0",
			Method:  "get_nursing_knowledge",
			Params: map[string]interface{}{
				"topic": "종양간호",
				"level": "basic",
			},
			ID: 1,
		})

		resultText(t, resp)
	})

	t.Run("ExecuteTool_Unknown", func(t *testing.T) {
		resp := reg.ExecuteTool(ctx, &protocol.JSONRPC2Request{
			JSONRPC: "2.0",
			Method:  "classify_patient",
			ID:      2,
		})

		if resp.Error == nil || resp.Error.Code != protocol.MethodNotFound {
			t.Fatalf("expected MethodNotFound, got %v", resp.Error)
		}
	})

	t.Run("ValidateAllTools", func(t *testing.T) {
		if err := reg.ValidateAllTools(); err != nil {
			t.Fatalf("ValidateAllTools failed: %v", err)
		}
	})
}

func TestToolRegistry_ResultCache(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	if err := reg.RegisterAllTools(); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}

	resultCache, err := cache.NewMemoryCache(16, time.Minute)
	if err != nil {
		t.Fatalf("NewMemoryCache failed: %v", err)
	}
	reg.SetResultCache(resultCache)

	knowledgeReq := &protocol.JSONRPC2Request{
		JSONRPC: "2.0",
		Method:  "get_nursing_knowledge",
		Params: map[string]interface{}{
			"topic": "종양간호",
			"level": "basic",
		},
		ID: 1,
	}

	t.Run("ReadOnly_Tool_Cached", func(t *testing.T) {
		first := reg.ExecuteTool(ctx, knowledgeReq)
		resultText(t, first)

		if resultCache.Len() != 1 {
			t.Fatalf("expected 1 cached result, got %d", resultCache.Len())
		}

		// Overwrite the cached entry so a cache hit is observable.
		key := reg.resultCacheKey(knowledgeReq)
		if key == "" {
			t.Fatal("expected a cache key for a read-only tool")
		}
		resultCache.Set(key, "sentinel")

		second := reg.ExecuteTool(ctx, knowledgeReq)
		if second.Result != "sentinel" {
			t.Errorf("second call not served from cache: %v", second.Result)
		}
	})

	t.Run("Mutating_Tool_Not_Cached", func(t *testing.T) {
		resultCache.Purge()

		resp := reg.ExecuteTool(ctx, &protocol.JSONRPC2Request{
			JSONRPC: "2.0",
			Method:  "record_study_session",
			Params: map[string]interface{}{
				"learner_id":            "learner-1",
				"module":                "oncology",
				"topic":                 "암생물학",
				"completion_percentage": 40,
			},
			ID: 2,
		})
		resultText(t, resp)

		if resultCache.Len() != 0 {
			t.Errorf("mutating tool result cached, got %d entries", resultCache.Len())
		}
	})

	t.Run("Error_Response_Not_Cached", func(t *testing.T) {
		resultCache.Purge()

		resp := reg.ExecuteTool(ctx, &protocol.JSONRPC2Request{
			JSONRPC: "2.0",
			Method:  "get_nursing_knowledge",
			Params:  map[string]interface{}{},
			ID:      3,
		})
		if resp.Error == nil {
			t.Fatal("expected an invalid-params error")
		}
		if resultCache.Len() != 0 {
			t.Errorf("error response cached, got %d entries", resultCache.Len())
		}
	})
}
