package progress

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// totalCurriculumTopics anchors the overall progress percentage; the
// five core modules carry ten topics each.
const totalCurriculumTopics = 50

// expectedAreaMinutes is the expected time per session by learning
// area. Areas outside the table default to 120 minutes.
var expectedAreaMinutes = map[string]float64{
	"fundamentals":   120,
	"adult_nursing":  150,
	"oncology":       180,
	"pediatric":      140,
	"maternal":       130,
	"mental_health":  140,
	"community":      110,
	"gene_therapy":   200,
	"clinical_trial": 160,
}

// Analyzer derives learning analytics from session records. It holds
// no state of its own; records come from the tracker.
type Analyzer struct {
	logger *logrus.Logger
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(logger *logrus.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze computes the full analytics block. An empty history yields
// the onboarding defaults.
func (a *Analyzer) Analyze(records []domain.ProgressRecord) *domain.LearningAnalytics {
	if len(records) == 0 {
		return &domain.LearningAnalytics{
			Strengths:       []string{"학습 시작 준비 완료"},
			Weaknesses:      []string{"학습 데이터 부족"},
			Recommendations: []string{"기본간호학부터 체계적 학습 시작"},
			NextSteps:       []string{"간호학 기초 개념 학습"},
		}
	}

	performance := AreaPerformances(records)
	analytics := &domain.LearningAnalytics{
		OverallProgress: overallCurriculumProgress(records),
		Strengths:       strengths(performance),
		Weaknesses:      weaknesses(performance),
		Recommendations: recommendations(performance),
		NextSteps:       nextSteps(records),
		StudyPatterns:   studyPatterns(records),
	}

	a.logger.WithFields(logrus.Fields{
		"records":          len(records),
		"areas":            len(performance),
		"overall_progress": analytics.OverallProgress,
	}).Debug("Computed learning analytics")

	return analytics
}

// overallCurriculumProgress counts distinct completed area/topic pairs
// against the fixed curriculum size.
func overallCurriculumProgress(records []domain.ProgressRecord) int {
	completed := make(map[string]struct{})
	for _, r := range records {
		if r.EndTime != nil {
			completed[r.Module+"_"+r.Topic] = struct{}{}
		}
	}
	return int(math.Round(float64(len(completed)) / totalCurriculumTopics * 100))
}

// AreaPerformances groups records by area and averages their metrics.
func AreaPerformances(records []domain.ProgressRecord) map[string]domain.AreaPerformance {
	grouped := make(map[string][]domain.ProgressRecord)
	for _, r := range records {
		grouped[r.Module] = append(grouped[r.Module], r)
	}

	performance := make(map[string]domain.AreaPerformance, len(grouped))
	for area, areaRecords := range grouped {
		var scoreSum, timeSum, attemptSum, confidenceSum float64
		scored := 0
		for _, r := range areaRecords {
			if r.Score != nil {
				scoreSum += float64(*r.Score)
				scored++
			}
			timeSum += float64(r.TimeSpent)
			attemptSum += float64(r.Attempts)
			confidenceSum += float64(r.ConfidenceLevel)
		}

		n := float64(len(areaRecords))
		perf := domain.AreaPerformance{
			AvgTimeSpent:  timeSum / n,
			AvgAttempts:   attemptSum / n,
			AvgConfidence: confidenceSum / n,
			ExpectedTime:  expectedTime(area),
			RecordCount:   len(areaRecords),
		}
		if scored > 0 {
			perf.AvgScore = scoreSum / float64(scored)
		}
		performance[area] = perf
	}
	return performance
}

func expectedTime(area string) float64 {
	if minutes, ok := expectedAreaMinutes[area]; ok {
		return minutes
	}
	return 120
}

func sortedAreas(performance map[string]domain.AreaPerformance) []string {
	areas := make([]string, 0, len(performance))
	for area := range performance {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return areas
}

func strengths(performance map[string]domain.AreaPerformance) []string {
	var out []string
	for _, area := range sortedAreas(performance) {
		perf := performance[area]
		if perf.AvgScore > 85 {
			out = append(out, area+" 영역에서 우수한 성과")
		}
		if perf.AvgTimeSpent < perf.ExpectedTime {
			out = append(out, area+" 영역에서 빠른 학습 속도")
		}
		if perf.AvgConfidence > 4 {
			out = append(out, area+" 영역에 대한 높은 자신감")
		}
	}
	if len(out) == 0 {
		return []string{"학습 데이터 분석 중"}
	}
	return out
}

func weaknesses(performance map[string]domain.AreaPerformance) []string {
	var out []string
	for _, area := range sortedAreas(performance) {
		perf := performance[area]
		if perf.AvgScore < 70 {
			out = append(out, area+" 영역에서 추가 학습 필요")
		}
		if perf.AvgTimeSpent > perf.ExpectedTime*1.5 {
			out = append(out, area+" 영역에서 학습 시간 과다 소요")
		}
		if perf.AvgConfidence < 3 {
			out = append(out, area+" 영역에 대한 자신감 부족")
		}
		if perf.AvgAttempts > 2 {
			out = append(out, area+" 영역에서 반복 학습 필요")
		}
	}
	if len(out) == 0 {
		return []string{"전반적으로 양호한 학습 진행"}
	}
	return out
}

func recommendations(performance map[string]domain.AreaPerformance) []string {
	var out []string
	for _, area := range sortedAreas(performance) {
		perf := performance[area]
		if perf.AvgScore < 70 {
			out = append(out, area+" 영역의 기본 개념 복습 권장")
		}
		if perf.AvgTimeSpent > perf.ExpectedTime*1.5 {
			out = append(out, area+" 영역에서 학습 전략 조정 필요")
		}
		if perf.AvgConfidence < 3 {
			out = append(out, area+" 영역에서 추가 연습 문제 풀이 권장")
		}
	}
	if len(out) == 0 {
		return []string{"현재 학습 패턴을 유지하면서 점진적 발전 도모"}
	}
	return out
}

// nextSteps follows the curriculum ordering: each completed area
// unlocks the next one unless it is already underway.
func nextSteps(records []domain.ProgressRecord) []string {
	completed := make(map[string]bool)
	current := make(map[string]bool)
	for _, r := range records {
		if r.EndTime != nil {
			completed[r.Module] = true
		} else {
			current[r.Module] = true
		}
	}

	var steps []string
	if completed["fundamentals"] && !current["adult_nursing"] {
		steps = append(steps, "성인간호학 학습 시작")
	}
	if completed["adult_nursing"] && !current["oncology"] {
		steps = append(steps, "종양간호학 전문 영역 진입")
	}
	if completed["oncology"] && !current["gene_therapy"] {
		steps = append(steps, "유전자 치료 간호 고급 과정 시작")
	}
	if completed["gene_therapy"] && !current["clinical_trial"] {
		steps = append(steps, "임상시험 간호 전문 과정 진입")
	}
	if len(steps) == 0 {
		steps = append(steps, "현재 학습 영역 심화 과정 진행")
	}
	return steps
}

func studyPatterns(records []domain.ProgressRecord) []domain.StudyPattern {
	return []domain.StudyPattern{
		timePreference(records),
		contentPreference(records),
		difficultyPreference(records),
	}
}

func timePreference(records []domain.ProgressRecord) domain.StudyPattern {
	total := 0.0
	for _, r := range records {
		total += float64(r.TimeSpent)
	}
	avg := total / float64(len(records))

	var preference string
	switch {
	case avg < 30:
		preference = "짧은 학습 세션 선호"
	case avg < 60:
		preference = "중간 길이 학습 세션 선호"
	default:
		preference = "긴 학습 세션 선호"
	}

	return domain.StudyPattern{
		PatternType:     "time_preference",
		Description:     fmt.Sprintf("%s (평균 %.0f분)", preference, avg),
		ConfidenceScore: 0.8,
	}
}

func contentPreference(records []domain.ProgressRecord) domain.StudyPattern {
	frequency := make(map[string]int)
	for _, r := range records {
		frequency[r.Module]++
	}

	areas := make([]string, 0, len(frequency))
	for area := range frequency {
		areas = append(areas, area)
	}
	sort.Slice(areas, func(i, j int) bool {
		if frequency[areas[i]] != frequency[areas[j]] {
			return frequency[areas[i]] > frequency[areas[j]]
		}
		return areas[i] < areas[j]
	})
	if len(areas) > 3 {
		areas = areas[:3]
	}

	return domain.StudyPattern{
		PatternType:     "content_preference",
		Description:     "선호 학습 영역: " + strings.Join(areas, ", "),
		ConfidenceScore: 0.7,
	}
}

func difficultyPreference(records []domain.ProgressRecord) domain.StudyPattern {
	total := 0.0
	for _, r := range records {
		total += float64(r.DifficultyRating)
	}
	avg := total / float64(len(records))

	var preference string
	switch {
	case avg < 2.5:
		preference = "기초 수준 선호"
	case avg < 3.5:
		preference = "중급 수준 선호"
	default:
		preference = "고급 수준 선호"
	}

	return domain.StudyPattern{
		PatternType:     "difficulty_preference",
		Description:     fmt.Sprintf("%s (평균 난이도 %.1f)", preference, avg),
		ConfidenceScore: 0.6,
	}
}
