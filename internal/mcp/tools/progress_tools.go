package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/mcp/protocol"
	"github.com/nursing-tutor-mcp-server/internal/progress"
)

// StudySessionTool implements the record_study_session MCP tool.
type StudySessionTool struct {
	logger  *logrus.Logger
	tracker *progress.Tracker
}

// StudySessionParams defines parameters for the record_study_session tool.
type StudySessionParams struct {
	LearnerID            string   `json:"learner_id" validate:"required"`
	Module               string   `json:"module" validate:"required"`
	Topic                string   `json:"topic" validate:"required"`
	CompletionPercentage int      `json:"completion_percentage"`
	Score                *int     `json:"score,omitempty"`
	DifficultyRating     int      `json:"difficulty_rating,omitempty"`
	ConfidenceLevel      int      `json:"confidence_level,omitempty"`
	Notes                string   `json:"notes,omitempty"`
	ResourcesUsed        []string `json:"resources_used,omitempty"`
	ChallengesFaced      []string `json:"challenges_faced,omitempty"`
	Achievements         []string `json:"achievements,omitempty"`
}

// NewStudySessionTool creates a new record_study_session tool.
func NewStudySessionTool(logger *logrus.Logger, tracker *progress.Tracker) *StudySessionTool {
	return &StudySessionTool{
		logger:  logger,
		tracker: tracker,
	}
}

// HandleTool implements the ToolHandler interface for record_study_session.
func (t *StudySessionTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "record_study_session").Info("Recording study session")

	var params StudySessionParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	t.tracker.StartSession(params.LearnerID, params.Module, params.Topic)

	if params.CompletionPercentage >= 100 {
		completion := domain.SessionCompletion{
			Score:            params.Score,
			DifficultyRating: params.DifficultyRating,
			ConfidenceLevel:  params.ConfidenceLevel,
			Notes:            params.Notes,
			ResourcesUsed:    params.ResourcesUsed,
			ChallengesFaced:  params.ChallengesFaced,
			Achievements:     params.Achievements,
		}
		if !t.tracker.CompleteSession(ctx, params.LearnerID, params.Module, params.Topic, completion) {
			return toolErrorResponse("Session recording failed", fmt.Errorf("no open session for learner %s", params.LearnerID))
		}
	} else if params.CompletionPercentage > 0 {
		t.tracker.UpdateSession(params.LearnerID, params.Module, params.Topic, params.CompletionPercentage)
	}

	t.logger.WithFields(logrus.Fields{
		"learner_id": params.LearnerID,
		"module":     params.Module,
		"topic":      params.Topic,
		"completion": params.CompletionPercentage,
	}).Info("Study session recorded")

	return textResponse(t.renderSessionResult(&params))
}

// GetToolInfo returns tool metadata.
func (t *StudySessionTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "record_study_session",
		Description: "학습 세션 기록 및 진도 저장",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"learner_id": map[string]interface{}{
					"type":        "string",
					"description": "학습자 ID",
				},
				"module": map[string]interface{}{
					"type":        "string",
					"description": "학습 모듈",
				},
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "학습 주제",
				},
				"completion_percentage": map[string]interface{}{
					"type":        "number",
					"description": "완료율 (0-100)",
				},
				"score":             map[string]interface{}{"type": "number"},
				"difficulty_rating": map[string]interface{}{"type": "number"},
				"confidence_level":  map[string]interface{}{"type": "number"},
				"notes":             map[string]interface{}{"type": "string"},
				"resources_used":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"challenges_faced":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"achievements":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
			"required": []string{"learner_id", "module", "topic"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *StudySessionTool) ValidateParams(params interface{}) error {
	var sessionParams StudySessionParams
	return t.parseAndValidateParams(params, &sessionParams)
}

func (t *StudySessionTool) parseAndValidateParams(params interface{}, target *StudySessionParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	if target.LearnerID == "" {
		return fmt.Errorf("learner_id is required")
	}
	if target.Module == "" {
		return fmt.Errorf("module is required")
	}
	if target.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if target.CompletionPercentage < 0 || target.CompletionPercentage > 100 {
		return fmt.Errorf("completion_percentage must be between 0 and 100")
	}
	if target.Score != nil && (*target.Score < 0 || *target.Score > 100) {
		return fmt.Errorf("score must be between 0 and 100")
	}
	return nil
}

func (t *StudySessionTool) renderSessionResult(params *StudySessionParams) string {
	var b strings.Builder

	b.WriteString("✅ 학습 세션이 기록되었습니다!\n\n")
	fmt.Fprintf(&b, "**모듈**: %s\n", params.Module)
	fmt.Fprintf(&b, "**주제**: %s\n", params.Topic)
	fmt.Fprintf(&b, "**완료율**: %d%%\n", params.CompletionPercentage)
	if params.Score != nil {
		fmt.Fprintf(&b, "**점수**: %d점\n", *params.Score)
	}

	summary := t.tracker.Summary(params.LearnerID)
	fmt.Fprintf(&b, "\n**전체 진도**: %d%%\n", summary.OverallProgress)
	fmt.Fprintf(&b, "**연속 학습일**: %d일\n", summary.StudyStreak)
	for _, module := range summary.ActiveModules {
		if module.Module == params.Module {
			fmt.Fprintf(&b, "**%s 숙련도**: %d%%\n", module.Module, module.MasteryLevel)
		}
	}
	return b.String()
}

// LearningProgressTool implements the get_learning_progress MCP tool.
type LearningProgressTool struct {
	logger   *logrus.Logger
	tracker  *progress.Tracker
	analyzer *progress.Analyzer
	profiles *progress.ProfileManager
	paths    *progress.PathEngine
}

// LearningProgressParams defines parameters for the get_learning_progress tool.
type LearningProgressParams struct {
	LearnerID           string `json:"learner_id" validate:"required"`
	IncludeAnalysis     bool   `json:"include_analysis,omitempty"`
	IncludeLearningPath bool   `json:"include_learning_path,omitempty"`
}

// NewLearningProgressTool creates a new get_learning_progress tool.
func NewLearningProgressTool(logger *logrus.Logger, tracker *progress.Tracker, analyzer *progress.Analyzer, profiles *progress.ProfileManager, paths *progress.PathEngine) *LearningProgressTool {
	return &LearningProgressTool{
		logger:   logger,
		tracker:  tracker,
		analyzer: analyzer,
		profiles: profiles,
		paths:    paths,
	}
}

// HandleTool implements the ToolHandler interface for get_learning_progress.
func (t *LearningProgressTool) HandleTool(ctx context.Context, req *protocol.JSONRPC2Request) *protocol.JSONRPC2Response {
	t.logger.WithField("tool", "get_learning_progress").Info("Building progress report")

	var params LearningProgressParams
	if err := t.parseAndValidateParams(req.Params, &params); err != nil {
		return invalidParamsResponse(err)
	}

	summary := t.tracker.Summary(params.LearnerID)

	var analytics *domain.LearningAnalytics
	if params.IncludeAnalysis {
		analytics = t.analyzer.Analyze(t.tracker.Records(params.LearnerID))
	}

	var path *domain.LearningPath
	if params.IncludeLearningPath {
		path = t.learningPath(params.LearnerID)
	}

	t.logger.WithFields(logrus.Fields{
		"learner_id":       params.LearnerID,
		"overall_progress": summary.OverallProgress,
		"with_analysis":    params.IncludeAnalysis,
		"with_path":        params.IncludeLearningPath,
	}).Info("Progress report built")

	return textResponse(renderProgressReport(&summary, analytics, path))
}

// GetToolInfo returns tool metadata.
func (t *LearningProgressTool) GetToolInfo() protocol.ToolInfo {
	return protocol.ToolInfo{
		Name:        "get_learning_progress",
		Description: "학습 진도 조회 및 학습 분석",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"learner_id": map[string]interface{}{
					"type":        "string",
					"description": "학습자 ID",
				},
				"include_analysis": map[string]interface{}{
					"type":        "boolean",
					"description": "학습 패턴 분석 포함 여부",
				},
				"include_learning_path": map[string]interface{}{
					"type":        "boolean",
					"description": "개인화된 학습 경로 포함 여부",
				},
			},
			"required": []string{"learner_id"},
		},
	}
}

// ValidateParams validates tool parameters.
func (t *LearningProgressTool) ValidateParams(params interface{}) error {
	var progressParams LearningProgressParams
	return t.parseAndValidateParams(params, &progressParams)
}

func (t *LearningProgressTool) parseAndValidateParams(params interface{}, target *LearningProgressParams) error {
	if err := ParseParams(params, target); err != nil {
		return err
	}
	if target.LearnerID == "" {
		return fmt.Errorf("learner_id is required")
	}
	return nil
}

// learningPath resolves the learner's personalized path, creating a
// default profile first when the learner has none yet.
func (t *LearningProgressTool) learningPath(learnerID string) *domain.LearningPath {
	profile, ok := t.profiles.Get(learnerID)
	if !ok {
		profile = t.profiles.Create(domain.LearnerProfile{ID: learnerID})
	}
	return t.paths.Generate(profile)
}

func renderProgressReport(summary *domain.ProgressSummary, analytics *domain.LearningAnalytics, path *domain.LearningPath) string {
	var b strings.Builder

	b.WriteString("# 📈 학습 진도 리포트\n\n")

	b.WriteString("## 📊 전체 현황\n")
	fmt.Fprintf(&b, "- **전체 진도**: %d%%\n", summary.OverallProgress)
	fmt.Fprintf(&b, "- **연속 학습일**: %d일\n", summary.StudyStreak)
	fmt.Fprintf(&b, "- **성과 추세**: %s\n\n", trendKorean(summary.PerformanceTrend))

	if len(summary.ActiveModules) > 0 {
		b.WriteString("## 📚 진행 중인 모듈\n")
		for _, module := range summary.ActiveModules {
			fmt.Fprintf(&b, "- **%s**: 진도 %d%%, 숙련도 %d%%, 학습 시간 %d분\n",
				module.Module, module.CurrentProgress, module.MasteryLevel, module.TimeSpent)
		}
		b.WriteString("\n")
	}

	if len(summary.CompletedModules) > 0 {
		b.WriteString("## ✅ 완료한 모듈\n")
		for _, module := range summary.CompletedModules {
			fmt.Fprintf(&b, "- **%s**: 숙련도 %d%%\n", module.Module, module.MasteryLevel)
		}
		b.WriteString("\n")
	}

	b.WriteString("## ⏱️ 최근 7일 활동\n")
	fmt.Fprintf(&b, "- **총 학습 시간**: %d분\n", summary.RecentActivity.TotalStudyTime)
	fmt.Fprintf(&b, "- **학습한 개념**: %d개\n\n", summary.RecentActivity.ConceptsLearned)

	if len(summary.UpcomingMilestones) > 0 {
		b.WriteString("## 🎯 예정된 마일스톤\n")
		for _, milestone := range summary.UpcomingMilestones {
			fmt.Fprintf(&b, "- **%s**: %d%% (목표일 %s)\n",
				milestone.Title, milestone.CompletionPercentage, milestone.TargetDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	if analytics != nil {
		b.WriteString("## 💪 강점\n")
		writeBullets(&b, analytics.Strengths)

		b.WriteString("\n## 📌 보완이 필요한 영역\n")
		writeBullets(&b, analytics.Weaknesses)

		b.WriteString("\n## 💡 학습 권장사항\n")
		writeBullets(&b, analytics.Recommendations)

		b.WriteString("\n## 🚀 다음 단계\n")
		writeBullets(&b, analytics.NextSteps)

		if len(analytics.StudyPatterns) > 0 {
			b.WriteString("\n## 🔍 학습 패턴\n")
			for _, pattern := range analytics.StudyPatterns {
				fmt.Fprintf(&b, "- %s (신뢰도 %.0f%%)\n", pattern.Description, pattern.ConfidenceScore*100)
			}
		}
	}

	if path != nil {
		b.WriteString("\n## 🗺️ 개인화된 학습 경로\n")
		fmt.Fprintf(&b, "- **권장 학습 순서**: %s\n", strings.Join(path.RecommendedSequence, " → "))
		fmt.Fprintf(&b, "- **예상 소요 기간**: %d주\n", path.EstimatedWeeks)
		fmt.Fprintf(&b, "- **권장 학습 일정**: 주 %d회, 회당 %d분 (휴식 %d분 간격)\n",
			path.Pacing.SessionsPerWeek, path.Pacing.SessionDuration, path.Pacing.BreakFrequency)
		if path.CurrentPosition < len(path.RecommendedSequence) {
			fmt.Fprintf(&b, "- **현재 모듈**: %s\n", path.RecommendedSequence[path.CurrentPosition])
		}
		if len(path.Checkpoints) > 0 {
			b.WriteString("\n### 체크포인트\n")
			for _, checkpoint := range path.Checkpoints {
				fmt.Fprintf(&b, "- %s (%s)\n", checkpoint.Title, checkpoint.Type)
			}
		}
	}
	return b.String()
}

func trendKorean(trend string) string {
	switch trend {
	case domain.TrendImproving:
		return "상승세 📈"
	case domain.TrendDeclining:
		return "하락세 📉"
	case domain.TrendStable:
		return "안정적 ➡️"
	default:
		return "데이터 부족"
	}
}
