package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress logs during testing
	return logger
}

func intPtr(v int) *int { return &v }

// memoryStore collects persisted records and milestones for
// verification.
type memoryStore struct {
	records    []*domain.ProgressRecord
	milestones []*domain.Milestone
	failSave   bool
}

func (m *memoryStore) SaveRecord(_ context.Context, record *domain.ProgressRecord) error {
	if m.failSave {
		return errors.New("store unavailable")
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryStore) ListRecords(_ context.Context, _ string) ([]*domain.ProgressRecord, error) {
	return m.records, nil
}

func (m *memoryStore) SaveMilestone(_ context.Context, _ string, milestone *domain.Milestone) error {
	if m.failSave {
		return errors.New("store unavailable")
	}
	m.milestones = append(m.milestones, milestone)
	return nil
}

func (m *memoryStore) ListMilestones(_ context.Context, _ string) ([]*domain.Milestone, error) {
	return m.milestones, nil
}

func (m *memoryStore) Close() error { return nil }

func TestProfileManager(t *testing.T) {
	manager := NewProfileManager(testLogger())

	t.Run("Create_Fills_Defaults", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{Name: "김간호"})

		assert.NotEmpty(t, profile.ID)
		assert.Equal(t, "김간호", profile.Name)
		assert.Equal(t, "bachelor", profile.Background.EducationLevel)
		assert.Equal(t, "Korean", profile.Background.NativeLanguage)
		assert.Equal(t, 3, profile.Background.MedicalTerminology)
		assert.Equal(t, "gradual", profile.LearningPreferences.DifficultyPreference)
		assert.Equal(t, 60, profile.LearningPreferences.SessionDuration)
		assert.Equal(t, 20, profile.LearningPreferences.WeeklyHours)
		assert.Equal(t, []string{"oncology"}, profile.CareerGoals.TargetSpecialty)
		assert.Equal(t, "hospital", profile.CareerGoals.WorkSetting)
		assert.False(t, profile.CareerGoals.Timeline.IsZero())
	})

	t.Run("Create_Keeps_Supplied_Values", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{
			LearningPreferences: domain.LearningPreferences{
				DifficultyPreference: "challenging",
				SessionDuration:      45,
			},
			CareerGoals: domain.CareerGoals{
				TargetSpecialty: []string{"pediatric"},
			},
		})

		assert.Equal(t, "challenging", profile.LearningPreferences.DifficultyPreference)
		assert.Equal(t, 45, profile.LearningPreferences.SessionDuration)
		assert.Equal(t, []string{"pediatric"}, profile.CareerGoals.TargetSpecialty)
	})

	t.Run("Update_Partial", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{Name: "이학생"})

		name := "이간호사"
		ok := manager.Update(profile.ID, ProfileUpdate{Name: &name})
		require.True(t, ok)

		updated, found := manager.Get(profile.ID)
		require.True(t, found)
		assert.Equal(t, "이간호사", updated.Name)
		// untouched sections survive
		assert.Equal(t, "bachelor", updated.Background.EducationLevel)
	})

	t.Run("Update_Unknown_Learner", func(t *testing.T) {
		name := "x"
		assert.False(t, manager.Update("missing", ProfileUpdate{Name: &name}))
	})

	t.Run("Get_Returns_Copy", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{})
		first, _ := manager.Get(profile.ID)
		first.CareerGoals.TargetSpecialty[0] = "mutated"

		second, _ := manager.Get(profile.ID)
		assert.Equal(t, "oncology", second.CareerGoals.TargetSpecialty[0])
	})
}

func TestTracker_SessionLifecycle(t *testing.T) {
	store := &memoryStore{}
	tracker := NewTracker(testLogger(), store)

	clock := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	ctx := context.Background()
	learner := "learner-1"

	tracker.StartSession(learner, "fundamentals", "활력징후")
	clock = clock.Add(45 * time.Minute)

	ok := tracker.CompleteSession(ctx, learner, "fundamentals", "활력징후", domain.SessionCompletion{
		Score:            intPtr(85),
		DifficultyRating: 3,
		ConfidenceLevel:  4,
		Notes:            "혈압 측정 복습",
	})
	require.True(t, ok)

	records := tracker.Records(learner)
	require.Len(t, records, 1)
	assert.Equal(t, 45, records[0].TimeSpent)
	assert.Equal(t, 100, records[0].CompletionPercentage)
	require.NotNil(t, records[0].Score)
	assert.Equal(t, 85, *records[0].Score)

	// one of ten topics done
	summary := tracker.Summary(learner)
	require.Len(t, summary.ActiveModules, 1)
	assert.Equal(t, 10, summary.ActiveModules[0].CurrentProgress)
	assert.Contains(t, summary.ActiveModules[0].TopicsCompleted, "활력징후")
	assert.NotContains(t, summary.ActiveModules[0].TopicsRemaining, "활력징후")

	// score 85, confidence 4, completion 100% blend to 88
	assert.Equal(t, 88, summary.ActiveModules[0].MasteryLevel)

	// session persisted
	require.Len(t, store.records, 1)
	assert.Equal(t, "활력징후", store.records[0].Topic)
}

func TestTracker_CompleteSession_StoreFailure(t *testing.T) {
	tracker := NewTracker(testLogger(), &memoryStore{failSave: true})
	tracker.StartSession("learner-1", "fundamentals", "간호과정")

	// persistence failure never fails the session
	ok := tracker.CompleteSession(context.Background(), "learner-1", "fundamentals", "간호과정", domain.SessionCompletion{ConfidenceLevel: 3})
	assert.True(t, ok)
	assert.Len(t, tracker.Records("learner-1"), 1)
}

func TestTracker_UpdateSession(t *testing.T) {
	tracker := NewTracker(testLogger(), nil)
	learner := "learner-1"

	assert.False(t, tracker.UpdateSession(learner, "oncology", "화학요법", 50))

	tracker.StartSession(learner, "oncology", "화학요법")
	assert.True(t, tracker.UpdateSession(learner, "oncology", "화학요법", 50))
	assert.Nil(t, tracker.Records(learner)[0].EndTime)

	assert.True(t, tracker.UpdateSession(learner, "oncology", "화학요법", 100))
	record := tracker.Records(learner)[0]
	require.NotNil(t, record.EndTime)
	assert.Equal(t, 100, record.CompletionPercentage)
}

func TestTracker_StreakAndTrend(t *testing.T) {
	tracker := NewTracker(testLogger(), nil)

	clock := time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	ctx := context.Background()
	learner := "learner-1"
	topics := []string{"간호철학", "간호과정", "의사소통"}
	scores := []int{70, 80, 90}

	// three consecutive study days ending today
	for i := 0; i < 3; i++ {
		clock = time.Date(2024, 3, 9+i, 9, 0, 0, 0, time.UTC)
		tracker.StartSession(learner, "fundamentals", topics[i])
		clock = clock.Add(30 * time.Minute)
		require.True(t, tracker.CompleteSession(ctx, learner, "fundamentals", topics[i], domain.SessionCompletion{
			Score:            intPtr(scores[i]),
			DifficultyRating: 3,
			ConfidenceLevel:  4,
		}))
	}

	summary := tracker.Summary(learner)
	assert.Equal(t, 3, summary.StudyStreak)
	// newest score 90 against older average 75
	assert.Equal(t, domain.TrendImproving, summary.PerformanceTrend)
	require.Len(t, summary.ActiveModules, 1)
	assert.Equal(t, 30, summary.ActiveModules[0].CurrentProgress)

	assert.Equal(t, 90, summary.RecentActivity.TotalStudyTime)
	assert.Equal(t, 3, summary.RecentActivity.ConceptsLearned)
	assert.Len(t, summary.RecentActivity.RecentSessions, 3)
}

func TestTracker_TrendInsufficientData(t *testing.T) {
	tracker := NewTracker(testLogger(), nil)
	tracker.StartSession("learner-1", "fundamentals", "간호철학")
	require.True(t, tracker.CompleteSession(context.Background(), "learner-1", "fundamentals", "간호철학", domain.SessionCompletion{
		Score:           intPtr(80),
		ConfidenceLevel: 3,
	}))

	summary := tracker.Summary("learner-1")
	assert.Equal(t, domain.TrendInsufficientData, summary.PerformanceTrend)
}

func TestTracker_RecordReflection(t *testing.T) {
	tracker := NewTracker(testLogger(), nil)
	learner := "learner-1"

	// nothing studied today yet
	assert.False(t, tracker.RecordReflection(learner, DailyReflection{MoodRating: 4}))

	tracker.StartSession(learner, "fundamentals", "환자안전")
	require.True(t, tracker.CompleteSession(context.Background(), learner, "fundamentals", "환자안전", domain.SessionCompletion{ConfidenceLevel: 3}))

	assert.True(t, tracker.RecordReflection(learner, DailyReflection{
		MoodRating:        4,
		EnergyLevel:       5,
		FocusLevel:        4,
		ReflectionNotes:   "집중이 잘 되었다",
		QuestionsAnswered: 10,
		CorrectAnswers:    8,
	}))

	summary := tracker.Summary(learner)
	require.Len(t, summary.RecentActivity.RecentSessions, 1)
	today := summary.RecentActivity.RecentSessions[0]
	assert.Equal(t, 4, today.MoodRating)
	assert.Equal(t, 10, today.QuestionsAnswered)
	assert.Equal(t, "집중이 잘 되었다", today.ReflectionNotes)
}

func TestTracker_WeeklySummary(t *testing.T) {
	tracker := NewTracker(testLogger(), nil)

	clock := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	ctx := context.Background()
	learner := "learner-1"

	sessions := []struct {
		topic      string
		score      int
		difficulty int
		confidence int
	}{
		{"암생물학", 90, 4, 4},
		{"화학요법", 85, 3, 4},
		{"방사선치료", 60, 4, 2},
	}
	for i, s := range sessions {
		clock = time.Date(2024, 3, 9+i, 10, 0, 0, 0, time.UTC)
		tracker.StartSession(learner, "oncology", s.topic)
		clock = clock.Add(time.Hour)
		require.True(t, tracker.CompleteSession(ctx, learner, "oncology", s.topic, domain.SessionCompletion{
			Score:            intPtr(s.score),
			DifficultyRating: s.difficulty,
			ConfidenceLevel:  s.confidence,
		}))
	}

	summary := tracker.WeeklySummary(learner)

	assert.Equal(t, 180, summary.TotalStudyTime)
	assert.Equal(t, 2, summary.ConceptsMastered)
	assert.Equal(t, 78, summary.AverageScore)

	// low score flags the module, then hard and low-confidence topics
	assert.Equal(t, []string{"oncology", "암생물학", "방사선치료"}, summary.ImprovementAreas)

	assert.Contains(t, summary.Achievements, "1개 주제에서 우수한 성과")
	assert.Contains(t, summary.Achievements, "어려운 내용 성공적 학습")
	assert.NotContains(t, summary.Achievements, "꾸준한 학습 습관 유지")

	assert.Contains(t, summary.NextWeekGoals, "oncology 모듈 진행")
	assert.Contains(t, summary.NextWeekGoals, "주 5일 이상 학습 유지")
}

func TestTracker_Milestones(t *testing.T) {
	store := &memoryStore{}
	tracker := NewTracker(testLogger(), store)

	clock := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return clock }

	ctx := context.Background()
	created := tracker.CreateMilestone(ctx, "learner-1", domain.Milestone{
		Title:           "종양간호 모듈 완료",
		Category:        "knowledge",
		TargetDate:      clock.AddDate(0, 1, 0),
		SuccessCriteria: []string{"모든 주제 완료", "평균 80점 이상"},
	})
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.CompletionPercentage)
	require.Len(t, store.milestones, 1)

	require.True(t, tracker.UpdateMilestone(ctx, "learner-1", created.ID, 100))
	assert.False(t, tracker.UpdateMilestone(ctx, "learner-1", "missing", 50))

	summary := tracker.Summary("learner-1")
	require.Len(t, summary.CompletedMilestones, 1)
	require.NotNil(t, summary.CompletedMilestones[0].CompletionDate)
	assert.True(t, summary.CompletedMilestones[0].CompletionDate.Equal(clock))
	assert.Empty(t, summary.UpcomingMilestones)
}

func TestAnalyzer_EmptyHistory(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())

	analytics := analyzer.Analyze(nil)

	assert.Equal(t, 0, analytics.OverallProgress)
	assert.Equal(t, []string{"학습 시작 준비 완료"}, analytics.Strengths)
	assert.Equal(t, []string{"학습 데이터 부족"}, analytics.Weaknesses)
	assert.Equal(t, []string{"기본간호학부터 체계적 학습 시작"}, analytics.Recommendations)
	assert.Equal(t, []string{"간호학 기초 개념 학습"}, analytics.NextSteps)
}

func TestAnalyzer_StrongLearner(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())

	end := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	records := []domain.ProgressRecord{
		{Module: "oncology", Topic: "암생물학", EndTime: &end, Score: intPtr(90), TimeSpent: 60, Attempts: 1, DifficultyRating: 4, ConfidenceLevel: 5, CompletionPercentage: 100},
		{Module: "oncology", Topic: "화학요법", EndTime: &end, Score: intPtr(95), TimeSpent: 70, Attempts: 1, DifficultyRating: 4, ConfidenceLevel: 5, CompletionPercentage: 100},
	}

	analytics := analyzer.Analyze(records)

	// two of fifty curriculum topics
	assert.Equal(t, 4, analytics.OverallProgress)
	assert.Contains(t, analytics.Strengths, "oncology 영역에서 우수한 성과")
	assert.Contains(t, analytics.Strengths, "oncology 영역에서 빠른 학습 속도")
	assert.Contains(t, analytics.Strengths, "oncology 영역에 대한 높은 자신감")
	assert.Equal(t, []string{"전반적으로 양호한 학습 진행"}, analytics.Weaknesses)
	assert.Equal(t, []string{"현재 학습 패턴을 유지하면서 점진적 발전 도모"}, analytics.Recommendations)
	assert.Equal(t, []string{"유전자 치료 간호 고급 과정 시작"}, analytics.NextSteps)

	require.Len(t, analytics.StudyPatterns, 3)
	assert.Equal(t, "time_preference", analytics.StudyPatterns[0].PatternType)
	assert.Equal(t, "긴 학습 세션 선호 (평균 65분)", analytics.StudyPatterns[0].Description)
	assert.Equal(t, 0.8, analytics.StudyPatterns[0].ConfidenceScore)
	assert.Equal(t, "선호 학습 영역: oncology", analytics.StudyPatterns[1].Description)
	assert.Equal(t, "고급 수준 선호 (평균 난이도 4.0)", analytics.StudyPatterns[2].Description)
}

func TestAnalyzer_StrugglingLearner(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())

	end := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	records := []domain.ProgressRecord{
		{Module: "fundamentals", Topic: "간호과정", EndTime: &end, Score: intPtr(50), TimeSpent: 300, Attempts: 3, DifficultyRating: 2, ConfidenceLevel: 2, CompletionPercentage: 100},
	}

	analytics := analyzer.Analyze(records)

	assert.Equal(t, []string{
		"fundamentals 영역에서 추가 학습 필요",
		"fundamentals 영역에서 학습 시간 과다 소요",
		"fundamentals 영역에 대한 자신감 부족",
		"fundamentals 영역에서 반복 학습 필요",
	}, analytics.Weaknesses)
	assert.Equal(t, []string{
		"fundamentals 영역의 기본 개념 복습 권장",
		"fundamentals 영역에서 학습 전략 조정 필요",
		"fundamentals 영역에서 추가 연습 문제 풀이 권장",
	}, analytics.Recommendations)
	assert.Equal(t, []string{"성인간호학 학습 시작"}, analytics.NextSteps)
	assert.Equal(t, []string{"학습 데이터 분석 중"}, analytics.Strengths)
}

func TestPathEngine_Generate(t *testing.T) {
	engine := NewPathEngine(testLogger())
	manager := NewProfileManager(testLogger())

	t.Run("Base_Sequence", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{})

		path := engine.Generate(profile)

		assert.Equal(t, []string{"fundamentals", "adult_nursing", "oncology", "gene_therapy", "clinical_trial"}, path.RecommendedSequence)
		assert.Equal(t, 58, path.EstimatedWeeks)
		assert.Equal(t, 0, path.CurrentPosition)
		// 20 weekly hours of 60-minute sessions clamps at daily
		assert.Equal(t, 7, path.Pacing.SessionsPerWeek)
		assert.Equal(t, []int{1, 3, 7, 14, 30}, path.Pacing.ReviewIntervals)

		require.Len(t, path.SupportResources, 1)
		assert.Equal(t, "oncology Specialized Resources", path.SupportResources[0].Title)
		assert.Equal(t, "/resources/oncology", path.SupportResources[0].URL)

		// positions 0 and 3 plus the final milestone
		require.Len(t, path.Checkpoints, 3)
		assert.Equal(t, "knowledge_check", path.Checkpoints[0].Type)
		assert.Equal(t, "milestone", path.Checkpoints[2].Type)
		assert.Equal(t, "checkpoint_clinical_trial", path.Checkpoints[2].ID)
	})

	t.Run("Specialty_Splice", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{
			CareerGoals: domain.CareerGoals{TargetSpecialty: []string{"pediatric"}},
		})

		path := engine.Generate(profile)

		assert.Equal(t, []string{"fundamentals", "adult_nursing", "pediatric", "oncology", "gene_therapy", "clinical_trial"}, path.RecommendedSequence)
		assert.Equal(t, 68, path.EstimatedWeeks)
	})

	t.Run("Community_Appended", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{
			CareerGoals: domain.CareerGoals{TargetSpecialty: []string{"community"}},
		})

		path := engine.Generate(profile)
		assert.Equal(t, "community", path.RecommendedSequence[len(path.RecommendedSequence)-1])
	})

	t.Run("Challenging_Moves_Advanced_Modules", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{
			LearningPreferences: domain.LearningPreferences{DifficultyPreference: "challenging"},
			CareerGoals:         domain.CareerGoals{TargetSpecialty: []string{"pediatric"}},
		})

		path := engine.Generate(profile)
		assert.Equal(t, []string{"fundamentals", "adult_nursing", "pediatric", "gene_therapy", "clinical_trial", "oncology"}, path.RecommendedSequence)
	})

	t.Run("Idempotent_Per_Learner", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{})

		first := engine.Generate(profile)
		second := engine.Generate(profile)
		assert.Equal(t, first.PathID, second.PathID)
	})

	t.Run("Short_Sessions_Pacing", func(t *testing.T) {
		profile := manager.Create(domain.LearnerProfile{
			LearningPreferences: domain.LearningPreferences{
				WeeklyHours:     2,
				SessionDuration: 90,
			},
		})

		path := engine.Generate(profile)
		assert.Equal(t, 1, path.Pacing.SessionsPerWeek)
		assert.Equal(t, 90, path.Pacing.SessionDuration)
	})
}

func TestPathEngine_Adapt(t *testing.T) {
	engine := NewPathEngine(testLogger())
	manager := NewProfileManager(testLogger())
	profile := manager.Create(domain.LearnerProfile{})
	engine.Generate(profile)

	t.Run("Unknown_Learner", func(t *testing.T) {
		assert.Nil(t, engine.Adapt("missing", domain.AreaPerformance{}))
	})

	t.Run("All_Rules_Fire", func(t *testing.T) {
		path := engine.Adapt(profile.ID, domain.AreaPerformance{
			AvgScore:      60,
			AvgTimeSpent:  300,
			ExpectedTime:  180,
			AvgConfidence: 2,
		})
		require.NotNil(t, path)

		require.Len(t, path.AdaptiveAdjustments, 3)
		assert.Equal(t, "low_performance", path.AdaptiveAdjustments[0].TriggerCondition)
		assert.Equal(t, "difficulty", path.AdaptiveAdjustments[0].AdjustmentType)
		assert.Equal(t, "Performance below expected threshold", path.AdaptiveAdjustments[0].Reason)
		assert.Equal(t, "pacing", path.AdaptiveAdjustments[1].AdjustmentType)
		assert.Equal(t, "resources", path.AdaptiveAdjustments[2].AdjustmentType)

		assert.Equal(t, 6, path.Pacing.SessionsPerWeek)

		last := path.SupportResources[len(path.SupportResources)-1]
		assert.Equal(t, "practice", last.Type)
		assert.Equal(t, "/practice/confidence-building", last.URL)
	})

	t.Run("Sessions_Floor", func(t *testing.T) {
		var path *domain.LearningPath
		for i := 0; i < 10; i++ {
			path = engine.Adapt(profile.ID, domain.AreaPerformance{
				AvgScore:      80,
				AvgTimeSpent:  300,
				ExpectedTime:  180,
				AvgConfidence: 4,
			})
		}
		require.NotNil(t, path)
		assert.Equal(t, 3, path.Pacing.SessionsPerWeek)
	})

	t.Run("Healthy_Performance_No_Adjustment", func(t *testing.T) {
		before, _ := engine.Get(profile.ID)
		path := engine.Adapt(profile.ID, domain.AreaPerformance{
			AvgScore:      85,
			AvgTimeSpent:  100,
			ExpectedTime:  180,
			AvgConfidence: 4,
		})
		assert.Len(t, path.AdaptiveAdjustments, len(before.AdaptiveAdjustments))
	})
}

func TestPathEngine_Position(t *testing.T) {
	engine := NewPathEngine(testLogger())
	manager := NewProfileManager(testLogger())
	profile := manager.Create(domain.LearnerProfile{})
	engine.Generate(profile)

	next, ok := engine.Next(profile.ID)
	require.True(t, ok)
	assert.Equal(t, "fundamentals", next)

	// incomplete or out-of-order modules never advance the position
	engine.UpdateProgress(profile.ID, "fundamentals", 80)
	engine.UpdateProgress(profile.ID, "oncology", 100)
	next, _ = engine.Next(profile.ID)
	assert.Equal(t, "fundamentals", next)

	engine.UpdateProgress(profile.ID, "fundamentals", 100)
	next, ok = engine.Next(profile.ID)
	require.True(t, ok)
	assert.Equal(t, "adult_nursing", next)

	_, ok = engine.Next("missing")
	assert.False(t, ok)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "progress.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	record := &domain.ProgressRecord{
		LearnerID:            "learner-1",
		Module:               "oncology",
		Topic:                "화학요법",
		StartTime:            start,
		EndTime:              &end,
		CompletionPercentage: 100,
		TimeSpent:            45,
		Score:                intPtr(88),
		Attempts:             1,
		DifficultyRating:     4,
		ConfidenceLevel:      4,
		Notes:                "부작용 관리 복습",
		ResourcesUsed:        []string{"강의 노트"},
		ChallengesFaced:      []string{"용량 계산"},
		Achievements:         []string{"프로토콜 이해"},
	}
	require.NoError(t, store.SaveRecord(ctx, record))

	records, err := store.ListRecords(ctx, "learner-1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "oncology", got.Module)
	assert.Equal(t, "화학요법", got.Topic)
	assert.WithinDuration(t, start, got.StartTime, time.Second)
	require.NotNil(t, got.EndTime)
	assert.WithinDuration(t, end, *got.EndTime, time.Second)
	require.NotNil(t, got.Score)
	assert.Equal(t, 88, *got.Score)
	assert.Equal(t, []string{"용량 계산"}, got.ChallengesFaced)

	other, err := store.ListRecords(ctx, "learner-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStore_MilestoneUpsert(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	milestone := &domain.Milestone{
		ID:              "m-1",
		Title:           "기본간호 모듈 완료",
		Category:        "knowledge",
		TargetDate:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		SuccessCriteria: []string{"모든 주제 완료"},
	}
	require.NoError(t, store.SaveMilestone(ctx, "learner-1", milestone))

	done := time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)
	milestone.CompletionPercentage = 100
	milestone.CompletionDate = &done
	require.NoError(t, store.SaveMilestone(ctx, "learner-1", milestone))

	milestones, err := store.ListMilestones(ctx, "learner-1")
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, 100, milestones[0].CompletionPercentage)
	require.NotNil(t, milestones[0].CompletionDate)
	assert.WithinDuration(t, done, *milestones[0].CompletionDate, time.Second)
}

func TestSQLiteStore_SaveRecordError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := &SQLiteStore{db: db}
	mock.ExpectExec("INSERT INTO progress_records").WillReturnError(errors.New("disk I/O error"))

	saveErr := store.SaveRecord(context.Background(), &domain.ProgressRecord{
		LearnerID: "learner-1",
		Module:    "oncology",
		Topic:     "화학요법",
		StartTime: time.Now(),
	})
	assert.Error(t, saveErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
