package progress

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// moduleTopics is the fixed curriculum. Module progress percentages are
// always computed against these topic lists.
var moduleTopics = map[string][]string{
	"fundamentals": {
		"간호철학", "간호과정", "의사소통", "환자안전", "감염관리",
		"기본간호술", "활력징후", "약물관리", "상처관리", "영양관리",
	},
	"adult_nursing": {
		"심혈관계", "호흡기계", "소화기계", "신경계", "내분비계",
		"근골격계", "비뇨기계", "생식기계", "혈액계", "면역계",
	},
	"oncology": {
		"암생물학", "화학요법", "방사선치료", "수술간호", "면역치료",
		"표적치료", "통증관리", "증상관리", "완화간호", "가족지지",
	},
	"gene_therapy": {
		"유전학기초", "분자생물학", "유전자편집", "벡터시스템", "세포치료",
		"유전상담", "윤리적고려", "안전관리", "모니터링", "부작용관리",
	},
	"clinical_trial": {
		"연구설계", "프로토콜", "동의과정", "데이터수집", "안전성모니터링",
		"규제준수", "품질관리", "이상반응", "통계분석", "보고서작성",
	},
}

// ModuleTopics returns the topic list of a module, or nil for unknown
// modules.
func ModuleTopics(module string) []string {
	return moduleTopics[module]
}

// DailyReflection is the end-of-day self-assessment attached to the
// current day's activity.
type DailyReflection struct {
	MoodRating        int    `json:"mood_rating"`
	EnergyLevel       int    `json:"energy_level"`
	FocusLevel        int    `json:"focus_level"`
	ReflectionNotes   string `json:"reflection_notes"`
	QuestionsAnswered int    `json:"questions_answered"`
	CorrectAnswers    int    `json:"correct_answers"`
}

// Tracker records learning sessions and derives module progress, daily
// activity, weekly summaries, milestones, streaks and performance
// trends. State lives in memory; completed sessions and milestones are
// additionally written to the store when one is configured.
type Tracker struct {
	logger *logrus.Logger
	store  Store

	mu         sync.Mutex
	records    map[string][]*domain.ProgressRecord
	modules    map[string]map[string]*domain.ModuleProgress
	activities map[string][]*domain.DailyActivity
	summaries  map[string][]domain.WeeklySummary
	milestones map[string][]*domain.Milestone

	now func() time.Time
}

// NewTracker creates a new tracker. A nil store disables persistence.
func NewTracker(logger *logrus.Logger, store Store) *Tracker {
	return &Tracker{
		logger:     logger,
		store:      store,
		records:    make(map[string][]*domain.ProgressRecord),
		modules:    make(map[string]map[string]*domain.ModuleProgress),
		activities: make(map[string][]*domain.DailyActivity),
		summaries:  make(map[string][]domain.WeeklySummary),
		milestones: make(map[string][]*domain.Milestone),
		now:        time.Now,
	}
}

// StartSession opens a learning session for a topic and marks the topic
// as in progress within its module.
func (t *Tracker) StartSession(learnerID, module, topic string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := &domain.ProgressRecord{
		LearnerID:        learnerID,
		Module:           module,
		Topic:            topic,
		StartTime:        t.now(),
		DifficultyRating: 3,
		ConfidenceLevel:  3,
		Attempts:         1,
	}
	t.records[learnerID] = append(t.records[learnerID], record)
	t.markTopicStarted(learnerID, module, topic)

	t.logger.WithFields(logrus.Fields{
		"learner_id": learnerID,
		"module":     module,
		"topic":      topic,
	}).Debug("Started learning session")
}

// UpdateSession sets the completion percentage of the open session for
// module/topic. Reaching 100 closes the session.
func (t *Tracker) UpdateSession(learnerID, module, topic string, completionPercentage int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.openSession(learnerID, module, topic)
	if record == nil {
		return false
	}

	record.CompletionPercentage = completionPercentage
	if completionPercentage == 100 {
		end := t.now()
		record.EndTime = &end
		record.TimeSpent = int(math.Round(end.Sub(record.StartTime).Minutes()))
		t.markTopicCompleted(learnerID, module, topic)
	}
	return true
}

// CompleteSession closes the open session for module/topic with the
// supplied assessment, recomputes module progress and folds the session
// into today's activity.
func (t *Tracker) CompleteSession(ctx context.Context, learnerID, module, topic string, completion domain.SessionCompletion) bool {
	t.mu.Lock()

	record := t.openSession(learnerID, module, topic)
	if record == nil {
		t.mu.Unlock()
		return false
	}

	end := t.now()
	record.EndTime = &end
	record.TimeSpent = int(math.Round(end.Sub(record.StartTime).Minutes()))
	record.CompletionPercentage = 100
	record.Score = completion.Score
	record.DifficultyRating = completion.DifficultyRating
	record.ConfidenceLevel = completion.ConfidenceLevel
	record.Notes = completion.Notes
	record.ResourcesUsed = completion.ResourcesUsed
	record.ChallengesFaced = completion.ChallengesFaced
	record.Achievements = completion.Achievements

	t.markTopicCompleted(learnerID, module, topic)
	t.foldIntoDailyActivity(learnerID, record)
	persisted := *record
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.SaveRecord(ctx, &persisted); err != nil {
			t.logger.WithFields(logrus.Fields{
				"learner_id": learnerID,
				"topic":      topic,
				"error":      err.Error(),
			}).Warn("Failed to persist progress record")
		}
	}
	return true
}

// openSession finds the most recent session for module/topic that has
// not ended yet. A second StartSession for the same pair leaves the
// earlier record open; completion always resolves against the newest.
// Callers hold t.mu.
func (t *Tracker) openSession(learnerID, module, topic string) *domain.ProgressRecord {
	records := t.records[learnerID]
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Module == module && r.Topic == topic && r.EndTime == nil {
			return r
		}
	}
	return nil
}

func (t *Tracker) moduleProgress(learnerID, module string) *domain.ModuleProgress {
	learnerModules, ok := t.modules[learnerID]
	if !ok {
		learnerModules = make(map[string]*domain.ModuleProgress)
		t.modules[learnerID] = learnerModules
	}
	mp, ok := learnerModules[module]
	if !ok {
		now := t.now()
		mp = &domain.ModuleProgress{
			Module:              module,
			StartDate:           now,
			EstimatedCompletion: now.AddDate(0, 0, 30),
			DifficultyRating:    3,
			LastActivity:        now,
			TopicsRemaining:     append([]string(nil), moduleTopics[module]...),
		}
		learnerModules[module] = mp
	}
	return mp
}

func (t *Tracker) markTopicStarted(learnerID, module, topic string) {
	mp := t.moduleProgress(learnerID, module)
	if !containsString(mp.TopicsInProgress, topic) {
		mp.TopicsInProgress = append(mp.TopicsInProgress, topic)
		mp.TopicsRemaining = removeString(mp.TopicsRemaining, topic)
	}
	mp.LastActivity = t.now()
}

func (t *Tracker) markTopicCompleted(learnerID, module, topic string) {
	mp := t.moduleProgress(learnerID, module)
	mp.TopicsCompleted = append(mp.TopicsCompleted, topic)
	mp.TopicsInProgress = removeString(mp.TopicsInProgress, topic)

	if total := len(moduleTopics[module]); total > 0 {
		mp.CurrentProgress = int(math.Round(float64(len(mp.TopicsCompleted)) / float64(total) * 100))
	}
	mp.MasteryLevel = t.masteryLevel(learnerID, module)
	mp.LastActivity = t.now()
}

// masteryLevel blends average score (40%), average confidence (30%) and
// completion rate (30%) over the module's closed sessions. Callers hold
// t.mu.
func (t *Tracker) masteryLevel(learnerID, module string) int {
	var closed []*domain.ProgressRecord
	for _, r := range t.records[learnerID] {
		if r.Module == module && r.EndTime != nil {
			closed = append(closed, r)
		}
	}
	if len(closed) == 0 {
		return 0
	}

	var scoreSum, confidenceSum, completed float64
	for _, r := range closed {
		if r.Score != nil {
			scoreSum += float64(*r.Score)
		}
		confidenceSum += float64(r.ConfidenceLevel)
		if r.CompletionPercentage == 100 {
			completed++
		}
	}
	n := float64(len(closed))
	avgScore := scoreSum / n
	avgConfidence := confidenceSum / n
	completionRate := completed / n

	return int(math.Round(((avgScore/100)*0.4 + (avgConfidence/5)*0.3 + completionRate*0.3) * 100))
}

func (t *Tracker) foldIntoDailyActivity(learnerID string, record *domain.ProgressRecord) {
	today := startOfDay(t.now())
	activity := t.dayActivity(learnerID, today)

	activity.StudyDuration += record.TimeSpent
	if !containsString(activity.ModulesStudied, record.Module) {
		activity.ModulesStudied = append(activity.ModulesStudied, record.Module)
	}
	if !containsString(activity.ConceptsLearned, record.Topic) {
		activity.ConceptsLearned = append(activity.ConceptsLearned, record.Topic)
	}
	if record.Notes != "" {
		activity.NotesCreated++
	}
}

func (t *Tracker) dayActivity(learnerID string, day time.Time) *domain.DailyActivity {
	for _, a := range t.activities[learnerID] {
		if a.Date.Equal(day) {
			return a
		}
	}
	activity := &domain.DailyActivity{
		Date:        day,
		MoodRating:  3,
		EnergyLevel: 3,
		FocusLevel:  3,
	}
	t.activities[learnerID] = append(t.activities[learnerID], activity)
	return activity
}

// RecordReflection attaches a self-assessment to today's activity. It
// returns false when no study happened today.
func (t *Tracker) RecordReflection(learnerID string, reflection DailyReflection) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := startOfDay(t.now())
	for _, a := range t.activities[learnerID] {
		if a.Date.Equal(today) {
			a.MoodRating = reflection.MoodRating
			a.EnergyLevel = reflection.EnergyLevel
			a.FocusLevel = reflection.FocusLevel
			a.ReflectionNotes = reflection.ReflectionNotes
			if reflection.QuestionsAnswered > 0 {
				a.QuestionsAnswered = reflection.QuestionsAnswered
			}
			if reflection.CorrectAnswers > 0 {
				a.CorrectAnswers = reflection.CorrectAnswers
			}
			return true
		}
	}
	return false
}

// WeeklySummary aggregates the trailing seven days and appends the
// result to the learner's summary history.
func (t *Tracker) WeeklySummary(learnerID string) domain.WeeklySummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	weekStart := startOfDay(now.AddDate(0, 0, -7))
	weekEnd := startOfDay(now).Add(24*time.Hour - time.Nanosecond)

	var weekActivities []*domain.DailyActivity
	for _, a := range t.activities[learnerID] {
		if !a.Date.Before(weekStart) && !a.Date.After(weekEnd) {
			weekActivities = append(weekActivities, a)
		}
	}
	var weekRecords []*domain.ProgressRecord
	for _, r := range t.records[learnerID] {
		if !r.StartTime.Before(weekStart) && !r.StartTime.After(weekEnd) {
			weekRecords = append(weekRecords, r)
		}
	}

	totalStudy := 0
	for _, a := range weekActivities {
		totalStudy += a.StudyDuration
	}

	summary := domain.WeeklySummary{
		WeekStart:        weekStart,
		WeekEnd:          weekEnd,
		TotalStudyTime:   totalStudy,
		ModulesCompleted: t.countCompletedModules(learnerID, weekStart, weekEnd),
		ConceptsMastered: countMasteredConcepts(weekRecords),
		AverageScore:     averageScore(weekRecords),
		ImprovementAreas: improvementAreas(weekRecords),
		Achievements:     weeklyAchievements(weekRecords),
		GoalsAchieved:    t.milestoneTitles(learnerID, weekStart, weekEnd, true),
		GoalsMissed:      t.milestoneTitles(learnerID, weekStart, weekEnd, false),
		NextWeekGoals:    nextWeekGoals(weekRecords),
	}

	t.summaries[learnerID] = append(t.summaries[learnerID], summary)
	return summary
}

func (t *Tracker) countCompletedModules(learnerID string, start, end time.Time) int {
	count := 0
	for _, mp := range t.modules[learnerID] {
		if mp.CurrentProgress == 100 && !mp.LastActivity.Before(start) && !mp.LastActivity.After(end) {
			count++
		}
	}
	return count
}

// Mastered means completed with a score of at least 80 and confidence
// of at least 4.
func countMasteredConcepts(records []*domain.ProgressRecord) int {
	count := 0
	for _, r := range records {
		if r.CompletionPercentage == 100 && r.Score != nil && *r.Score >= 80 && r.ConfidenceLevel >= 4 {
			count++
		}
	}
	return count
}

func averageScore(records []*domain.ProgressRecord) int {
	sum, n := 0, 0
	for _, r := range records {
		if r.Score != nil {
			sum += *r.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// improvementAreas collects modules with low scores, then topics rated
// hard or studied with low confidence, deduplicated in that order.
func improvementAreas(records []*domain.ProgressRecord) []string {
	var areas []string
	for _, r := range records {
		if r.Score != nil && *r.Score < 70 && !containsString(areas, r.Module) {
			areas = append(areas, r.Module)
		}
	}
	for _, r := range records {
		if r.DifficultyRating >= 4 && !containsString(areas, r.Topic) {
			areas = append(areas, r.Topic)
		}
	}
	for _, r := range records {
		if r.ConfidenceLevel <= 2 && !containsString(areas, r.Topic) {
			areas = append(areas, r.Topic)
		}
	}
	return areas
}

func weeklyAchievements(records []*domain.ProgressRecord) []string {
	var achievements []string

	highScores := 0
	for _, r := range records {
		if r.Score != nil && *r.Score >= 90 {
			highScores++
		}
	}
	if highScores > 0 {
		achievements = append(achievements, fmt.Sprintf("%d개 주제에서 우수한 성과", highScores))
	}

	days := make(map[string]struct{})
	for _, r := range records {
		days[r.StartTime.Format("2006-01-02")] = struct{}{}
	}
	if len(days) >= 5 {
		achievements = append(achievements, "꾸준한 학습 습관 유지")
	}

	for _, r := range records {
		if r.DifficultyRating >= 4 && r.Score != nil && *r.Score >= 80 {
			achievements = append(achievements, "어려운 내용 성공적 학습")
			break
		}
	}
	return achievements
}

func (t *Tracker) milestoneTitles(learnerID string, start, end time.Time, achieved bool) []string {
	var titles []string
	for _, m := range t.milestones[learnerID] {
		if achieved {
			if m.CompletionDate != nil && !m.CompletionDate.Before(start) && !m.CompletionDate.After(end) {
				titles = append(titles, m.Title)
			}
		} else {
			if m.CompletionDate == nil && !m.TargetDate.Before(start) && !m.TargetDate.After(end) {
				titles = append(titles, m.Title)
			}
		}
	}
	return titles
}

func nextWeekGoals(records []*domain.ProgressRecord) []string {
	var goals []string
	var modules []string
	for _, r := range records {
		if !containsString(modules, r.Module) {
			modules = append(modules, r.Module)
		}
	}
	for _, module := range modules {
		goals = append(goals, module+" 모듈 진행")
	}

	weak := improvementAreas(records)
	if len(weak) > 2 {
		weak = weak[:2]
	}
	for _, area := range weak {
		goals = append(goals, area+" 영역 집중 학습")
	}

	goals = append(goals, "주 5일 이상 학습 유지")
	return goals
}

// CreateMilestone registers a learner goal and returns it with its id
// assigned.
func (t *Tracker) CreateMilestone(ctx context.Context, learnerID string, milestone domain.Milestone) domain.Milestone {
	milestone.ID = uuid.NewString()
	milestone.CompletionDate = nil
	milestone.CompletionPercentage = 0

	t.mu.Lock()
	t.milestones[learnerID] = append(t.milestones[learnerID], &milestone)
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.SaveMilestone(ctx, learnerID, &milestone); err != nil {
			t.logger.WithFields(logrus.Fields{
				"learner_id":   learnerID,
				"milestone_id": milestone.ID,
				"error":        err.Error(),
			}).Warn("Failed to persist milestone")
		}
	}
	return milestone
}

// UpdateMilestone sets the completion percentage; reaching 100 stamps
// the completion date once.
func (t *Tracker) UpdateMilestone(ctx context.Context, learnerID, milestoneID string, completionPercentage int) bool {
	t.mu.Lock()
	var updated *domain.Milestone
	for _, m := range t.milestones[learnerID] {
		if m.ID == milestoneID {
			m.CompletionPercentage = completionPercentage
			if completionPercentage == 100 && m.CompletionDate == nil {
				done := t.now()
				m.CompletionDate = &done
			}
			copied := *m
			updated = &copied
			break
		}
	}
	t.mu.Unlock()

	if updated == nil {
		return false
	}
	if t.store != nil {
		if err := t.store.SaveMilestone(ctx, learnerID, updated); err != nil {
			t.logger.WithFields(logrus.Fields{
				"learner_id":   learnerID,
				"milestone_id": milestoneID,
				"error":        err.Error(),
			}).Warn("Failed to persist milestone update")
		}
	}
	return true
}

// Records returns copies of all session records of a learner, in
// insertion order.
func (t *Tracker) Records(learnerID string) []domain.ProgressRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := make([]domain.ProgressRecord, 0, len(t.records[learnerID]))
	for _, r := range t.records[learnerID] {
		records = append(records, *r)
	}
	return records
}

// Summary assembles the learner's aggregate progress view.
func (t *Tracker) Summary(learnerID string) domain.ProgressSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := domain.ProgressSummary{
		OverallProgress:  t.overallProgress(learnerID),
		RecentActivity:   t.recentActivity(learnerID),
		StudyStreak:      t.studyStreak(learnerID),
		PerformanceTrend: t.performanceTrend(learnerID),
	}

	for _, mp := range t.modules[learnerID] {
		switch {
		case mp.CurrentProgress == 100:
			summary.CompletedModules = append(summary.CompletedModules, *mp)
		case mp.CurrentProgress > 0:
			summary.ActiveModules = append(summary.ActiveModules, *mp)
		}
	}
	sort.Slice(summary.ActiveModules, func(i, j int) bool {
		return summary.ActiveModules[i].Module < summary.ActiveModules[j].Module
	})
	sort.Slice(summary.CompletedModules, func(i, j int) bool {
		return summary.CompletedModules[i].Module < summary.CompletedModules[j].Module
	})

	now := t.now()
	for _, m := range t.milestones[learnerID] {
		if m.CompletionDate != nil {
			summary.CompletedMilestones = append(summary.CompletedMilestones, *m)
		} else if m.TargetDate.After(now) {
			summary.UpcomingMilestones = append(summary.UpcomingMilestones, *m)
		}
	}
	return summary
}

func (t *Tracker) overallProgress(learnerID string) int {
	modules := t.modules[learnerID]
	if len(modules) == 0 {
		return 0
	}
	total := 0
	for _, mp := range modules {
		total += mp.CurrentProgress
	}
	return int(math.Round(float64(total) / float64(len(modules))))
}

func (t *Tracker) recentActivity(learnerID string) domain.RecentActivity {
	cutoff := t.now().AddDate(0, 0, -7)

	var recent []domain.DailyActivity
	for _, a := range t.activities[learnerID] {
		if !a.Date.Before(cutoff) {
			recent = append(recent, *a)
		}
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })

	activity := domain.RecentActivity{}
	moodSum := 0
	for _, a := range recent {
		activity.TotalStudyTime += a.StudyDuration
		activity.ConceptsLearned += len(a.ConceptsLearned)
		moodSum += a.MoodRating
	}
	if len(recent) > 0 {
		activity.AverageMood = float64(moodSum) / float64(len(recent))
	}
	if len(recent) > 7 {
		recent = recent[:7]
	}
	activity.RecentSessions = recent
	return activity
}

// studyStreak counts consecutive study days ending today. A gap of one
// day breaks the streak.
func (t *Tracker) studyStreak(learnerID string) int {
	activities := append([]*domain.DailyActivity(nil), t.activities[learnerID]...)
	sort.Slice(activities, func(i, j int) bool { return activities[i].Date.After(activities[j].Date) })

	streak := 0
	today := startOfDay(t.now())
	for _, a := range activities {
		daysAgo := int(today.Sub(startOfDay(a.Date)).Hours() / 24)
		if daysAgo == streak && a.StudyDuration > 0 {
			streak++
		} else {
			break
		}
	}
	return streak
}

// performanceTrend compares the newer and older halves of the last ten
// scored sessions.
func (t *Tracker) performanceTrend(learnerID string) string {
	var scored []*domain.ProgressRecord
	for _, r := range t.records[learnerID] {
		if r.Score != nil && r.EndTime != nil {
			scored = append(scored, r)
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].StartTime.After(scored[j].StartTime) })
	if len(scored) > 10 {
		scored = scored[:10]
	}
	if len(scored) < 3 {
		return domain.TrendInsufficientData
	}

	half := len(scored) / 2
	newer, older := scored[:half], scored[half:]

	avg := func(records []*domain.ProgressRecord) float64 {
		sum := 0
		for _, r := range records {
			sum += *r.Score
		}
		return float64(sum) / float64(len(records))
	}

	diff := avg(newer) - avg(older)
	switch {
	case diff > 5:
		return domain.TrendImproving
	case diff < -5:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func removeString(list []string, target string) []string {
	out := list[:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
