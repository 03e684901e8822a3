package progress

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// baseSequence is the default module ordering for a new learner.
var baseSequence = []string{
	"fundamentals",
	"adult_nursing",
	"oncology",
	"gene_therapy",
	"clinical_trial",
}

// advancedModules are moved earlier for learners who ask for a
// challenging pace.
var advancedModules = map[string]bool{
	"gene_therapy":   true,
	"clinical_trial": true,
}

// weekEstimates is the expected weeks of study per module; unknown
// modules count 8 weeks.
var weekEstimates = map[string]int{
	"fundamentals":   8,
	"adult_nursing":  12,
	"oncology":       16,
	"pediatric":      10,
	"maternal":       10,
	"mental_health":  10,
	"community":      8,
	"gene_therapy":   12,
	"clinical_trial": 10,
}

// reviewIntervals is the spaced-repetition schedule in days.
var reviewIntervals = []int{1, 3, 7, 14, 30}

// adjustmentReasons maps an adaptation rule to the recorded reason.
var adjustmentReasons = map[string]string{
	"low_performance": "Performance below expected threshold",
	"slow_progress":   "Learning pace slower than optimal",
	"low_confidence":  "Confidence level needs improvement",
}

// PathEngine generates and adapts per-learner module sequences. One
// path exists per learner; generating again returns the existing path.
type PathEngine struct {
	logger *logrus.Logger

	mu    sync.Mutex
	paths map[string]*domain.LearningPath

	now func() time.Time
}

// NewPathEngine creates a new path engine.
func NewPathEngine(logger *logrus.Logger) *PathEngine {
	return &PathEngine{
		logger: logger,
		paths:  make(map[string]*domain.LearningPath),
		now:    time.Now,
	}
}

// Generate builds the personalized path for a profile, or returns the
// learner's existing path unchanged.
func (e *PathEngine) Generate(profile *domain.LearnerProfile) *domain.LearningPath {
	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.paths[profile.ID]; ok {
		return clonePath(existing)
	}

	sequence := buildSequence(profile)
	path := &domain.LearningPath{
		LearnerID:           profile.ID,
		PathID:              "path_" + uuid.NewString(),
		RecommendedSequence: sequence,
		EstimatedWeeks:      estimatedWeeks(sequence),
		Pacing:              pacingFor(profile),
		SupportResources:    supportResourcesFor(profile),
		Checkpoints:         checkpointsFor(sequence),
	}
	e.paths[profile.ID] = path

	e.logger.WithFields(logrus.Fields{
		"learner_id": profile.ID,
		"path_id":    path.PathID,
		"modules":    len(sequence),
		"weeks":      path.EstimatedWeeks,
	}).Info("Generated learning path")

	return clonePath(path)
}

// buildSequence applies the specialty and difficulty customizations to
// the base module ordering.
func buildSequence(profile *domain.LearnerProfile) []string {
	sequence := append([]string(nil), baseSequence...)

	for _, specialty := range profile.CareerGoals.TargetSpecialty {
		switch specialty {
		case "pediatric", "maternal", "mental_health":
			sequence = spliceAt(sequence, 2, specialty)
		case "community":
			sequence = append(sequence, specialty)
		}
	}

	if profile.LearningPreferences.DifficultyPreference == "challenging" {
		var advanced, rest []string
		for _, module := range sequence {
			if advancedModules[module] {
				advanced = append(advanced, module)
			} else {
				rest = append(rest, module)
			}
		}
		sequence = rest
		for i, module := range advanced {
			sequence = spliceAt(sequence, 3+i, module)
		}
	}

	return sequence
}

func spliceAt(sequence []string, index int, module string) []string {
	if index > len(sequence) {
		index = len(sequence)
	}
	sequence = append(sequence, "")
	copy(sequence[index+1:], sequence[index:])
	sequence[index] = module
	return sequence
}

func estimatedWeeks(sequence []string) int {
	total := 0
	for _, module := range sequence {
		if weeks, ok := weekEstimates[module]; ok {
			total += weeks
		} else {
			total += 8
		}
	}
	return total
}

func pacingFor(profile *domain.LearnerProfile) domain.PacingRecommendation {
	prefs := profile.LearningPreferences
	sessions := 3
	if prefs.SessionDuration > 0 {
		sessions = prefs.WeeklyHours * 60 / prefs.SessionDuration
	}
	if sessions < 1 {
		sessions = 1
	}
	if sessions > 7 {
		sessions = 7
	}

	return domain.PacingRecommendation{
		SessionsPerWeek: sessions,
		SessionDuration: prefs.SessionDuration,
		BreakFrequency:  prefs.BreakIntervals,
		ReviewIntervals: append([]int(nil), reviewIntervals...),
	}
}

func supportResourcesFor(profile *domain.LearnerProfile) []domain.SupportResource {
	resources := make([]domain.SupportResource, 0, len(profile.CareerGoals.TargetSpecialty))
	for _, specialty := range profile.CareerGoals.TargetSpecialty {
		resources = append(resources, domain.SupportResource{
			Type:              "text",
			Title:             specialty + " Specialized Resources",
			URL:               "/resources/" + specialty,
			DifficultyLevel:   4,
			EstimatedDuration: 90,
			RecommendedFor:    []string{specialty},
		})
	}
	return resources
}

// checkpointsFor places a knowledge check every third module and a
// milestone at the end of the sequence.
func checkpointsFor(sequence []string) []domain.Checkpoint {
	var checkpoints []domain.Checkpoint
	for i, module := range sequence {
		if i%3 != 0 && i != len(sequence)-1 {
			continue
		}
		kind := "knowledge_check"
		if i == len(sequence)-1 {
			kind = "milestone"
		}
		checkpoints = append(checkpoints, domain.Checkpoint{
			ID:              "checkpoint_" + module,
			Position:        i,
			Title:           "Checkpoint: " + module,
			Type:            kind,
			Requirements:    []string{"Complete " + module + " module"},
			SuccessCriteria: []string{"Score 80% or higher", "Demonstrate practical application"},
		})
	}
	return checkpoints
}

// Adapt applies the adaptation rules against the learner's area
// performance and records each firing rule. It returns the adapted
// path, or nil when the learner has no path.
func (e *PathEngine) Adapt(learnerID string, performance domain.AreaPerformance) *domain.LearningPath {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, ok := e.paths[learnerID]
	if !ok {
		return nil
	}

	if performance.AvgScore < 70 {
		e.recordAdjustment(path, "low_performance", "difficulty")
	}
	if performance.AvgTimeSpent > performance.ExpectedTime*1.5 {
		if path.Pacing.SessionsPerWeek > 3 {
			path.Pacing.SessionsPerWeek--
		}
		e.recordAdjustment(path, "slow_progress", "pacing")
	}
	if performance.AvgConfidence < 3 {
		path.SupportResources = append(path.SupportResources, domain.SupportResource{
			Type:              "practice",
			Title:             "Additional Practice Exercises",
			URL:               "/practice/confidence-building",
			DifficultyLevel:   2,
			EstimatedDuration: 30,
			RecommendedFor:    []string{"low_confidence"},
		})
		e.recordAdjustment(path, "low_confidence", "resources")
	}

	return clonePath(path)
}

func (e *PathEngine) recordAdjustment(path *domain.LearningPath, rule, kind string) {
	path.AdaptiveAdjustments = append(path.AdaptiveAdjustments, domain.AdaptiveAdjustment{
		AdjustmentID:     "adj_" + uuid.NewString(),
		TriggerCondition: rule,
		AdjustmentType:   kind,
		Reason:           adjustmentReasons[rule],
		AppliedDate:      e.now(),
	})

	e.logger.WithFields(logrus.Fields{
		"learner_id": path.LearnerID,
		"rule":       rule,
		"type":       kind,
	}).Info("Adapted learning path")
}

// UpdateProgress advances the path position when the module at the
// current position reaches full completion. The position never moves
// backwards.
func (e *PathEngine) UpdateProgress(learnerID, module string, completionPercentage int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, ok := e.paths[learnerID]
	if !ok || path.CurrentPosition >= len(path.RecommendedSequence) {
		return
	}
	if path.RecommendedSequence[path.CurrentPosition] == module && completionPercentage == 100 {
		path.CurrentPosition++
	}
}

// Next returns the module at the current path position, or false when
// the path is finished or absent.
func (e *PathEngine) Next(learnerID string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, ok := e.paths[learnerID]
	if !ok || path.CurrentPosition >= len(path.RecommendedSequence) {
		return "", false
	}
	return path.RecommendedSequence[path.CurrentPosition], true
}

// Get returns a copy of the learner's path.
func (e *PathEngine) Get(learnerID string) (*domain.LearningPath, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	path, ok := e.paths[learnerID]
	if !ok {
		return nil, false
	}
	return clonePath(path), true
}

func clonePath(p *domain.LearningPath) *domain.LearningPath {
	clone := *p
	clone.RecommendedSequence = append([]string(nil), p.RecommendedSequence...)
	clone.Pacing.ReviewIntervals = append([]int(nil), p.Pacing.ReviewIntervals...)
	clone.SupportResources = append([]domain.SupportResource(nil), p.SupportResources...)
	clone.Checkpoints = append([]domain.Checkpoint(nil), p.Checkpoints...)
	clone.AdaptiveAdjustments = append([]domain.AdaptiveAdjustment(nil), p.AdaptiveAdjustments...)
	return &clone
}
