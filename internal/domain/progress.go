package domain

import "time"

// LearnerProfile holds identity, background and preference data for one
// learner. CurrentStatus and LastActive mutate over the learner's
// lifetime; the rest is set at registration.
type LearnerProfile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`

	Background          LearnerBackground   `json:"background"`
	LearningPreferences LearningPreferences `json:"learning_preferences"`
	CareerGoals         CareerGoals         `json:"career_goals"`
	CurrentStatus       LearnerStatus       `json:"current_status"`
}

// LearnerBackground describes education and professional history.
type LearnerBackground struct {
	EducationLevel       string `json:"education_level"` // high_school, bachelor, master, phd
	PreviousMajor        string `json:"previous_major"`
	HealthcareExperience int    `json:"healthcare_experience"` // years
	NursingExperience    int    `json:"nursing_experience"`    // years
	NativeLanguage       string `json:"native_language"`
	EnglishLevel         string `json:"english_level"`
	MedicalTerminology   int    `json:"medical_terminology"` // 1-10
}

// LearningPreferences describes how the learner prefers to study.
type LearningPreferences struct {
	DifficultyPreference string `json:"difficulty_preference"` // gradual, challenging, mixed
	InteractionType      string `json:"interaction_type"`      // self_paced, guided, collaborative
	SessionDuration      int    `json:"session_duration"`      // minutes
	BreakIntervals       int    `json:"break_intervals"`       // minutes
	WeeklyHours          int    `json:"weekly_hours"`
}

// CareerGoals describes the learner's professional targets.
type CareerGoals struct {
	TargetSpecialty    []string  `json:"target_specialty"`
	WorkSetting        string    `json:"work_setting"` // hospital, clinic, research, education
	Timeline           time.Time `json:"timeline"`
	CertificationGoals []string  `json:"certification_goals"`
}

// LearnerStatus is the mutable progress block of a profile.
type LearnerStatus struct {
	OverallProgress  int      `json:"overall_progress"`
	ActiveModules    []string `json:"active_modules"`
	CompletedModules []string `json:"completed_modules"`
	StrugglingAreas  []string `json:"struggling_areas"`
	StrengthAreas    []string `json:"strength_areas"`
}

// ProgressRecord is one learning session. Records append per learner;
// TimeSpent is meaningful only once EndTime is set and equals
// EndTime-StartTime in whole minutes.
type ProgressRecord struct {
	LearnerID            string     `json:"learner_id"`
	Module               string     `json:"module_name"`
	Topic                string     `json:"topic"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              *time.Time `json:"end_time,omitempty"`
	CompletionPercentage int        `json:"completion_percentage"`
	TimeSpent            int        `json:"time_spent"` // minutes
	Score                *int       `json:"score,omitempty"`
	Attempts             int        `json:"attempts"`
	DifficultyRating     int        `json:"difficulty_rating"` // 1-5
	ConfidenceLevel      int        `json:"confidence_level"`  // 1-5
	Notes                string     `json:"notes,omitempty"`
	ResourcesUsed        []string   `json:"resources_used"`
	ChallengesFaced      []string   `json:"challenges_faced"`
	Achievements         []string   `json:"achievements"`
}

// SessionCompletion carries the caller-supplied data attached when a
// session finishes.
type SessionCompletion struct {
	Score            *int     `json:"score,omitempty"`
	DifficultyRating int      `json:"difficulty_rating"`
	ConfidenceLevel  int      `json:"confidence_level"`
	Notes            string   `json:"notes,omitempty"`
	ResourcesUsed    []string `json:"resources_used"`
	ChallengesFaced  []string `json:"challenges_faced"`
	Achievements     []string `json:"achievements"`
}

// ModuleProgress is derived per learner and module; CurrentProgress is
// always recomputed from the completed topic set, never set directly.
type ModuleProgress struct {
	Module              string    `json:"module_name"`
	StartDate           time.Time `json:"start_date"`
	CurrentProgress     int       `json:"current_progress"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
	TimeSpent           int       `json:"time_spent"`
	DifficultyRating    int       `json:"difficulty_rating"`
	MasteryLevel        int       `json:"mastery_level"`
	LastActivity        time.Time `json:"last_activity"`
	TopicsCompleted     []string  `json:"topics_completed"`
	TopicsInProgress    []string  `json:"topics_in_progress"`
	TopicsRemaining     []string  `json:"topics_remaining"`
}

// DailyActivity aggregates one learner's study for a calendar day.
type DailyActivity struct {
	Date              time.Time `json:"date"`
	StudyDuration     int       `json:"study_duration"` // minutes
	ModulesStudied    []string  `json:"modules_studied"`
	ConceptsLearned   []string  `json:"concepts_learned"`
	QuestionsAnswered int       `json:"questions_answered"`
	CorrectAnswers    int       `json:"correct_answers"`
	NotesCreated      int       `json:"notes_created"`
	ReflectionNotes   string    `json:"reflection_notes"`
	MoodRating        int       `json:"mood_rating"`  // 1-5
	EnergyLevel       int       `json:"energy_level"` // 1-5
	FocusLevel        int       `json:"focus_level"`  // 1-5
}

// WeeklySummary aggregates the prior seven days of activity.
type WeeklySummary struct {
	WeekStart        time.Time `json:"week_start"`
	WeekEnd          time.Time `json:"week_end"`
	TotalStudyTime   int       `json:"total_study_time"`
	ModulesCompleted int       `json:"modules_completed"`
	ConceptsMastered int       `json:"concepts_mastered"`
	AverageScore     int       `json:"average_score"`
	ImprovementAreas []string  `json:"improvement_areas"`
	Achievements     []string  `json:"achievements"`
	GoalsAchieved    []string  `json:"goals_achieved"`
	GoalsMissed      []string  `json:"goals_missed"`
	NextWeekGoals    []string  `json:"next_week_goals"`
}

// Milestone is an explicit learner goal with a target date.
type Milestone struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"` // knowledge, skill, competency, certification
	TargetDate           time.Time  `json:"target_date"`
	CompletionDate       *time.Time `json:"completion_date,omitempty"`
	CompletionPercentage int        `json:"completion_percentage"`
	SuccessCriteria      []string   `json:"success_criteria"`
}

// LearningPath is the ordered, adjustable module sequence for one
// learner. CurrentPosition only advances, never decreases; the
// adjustment history is append-only.
type LearningPath struct {
	LearnerID           string               `json:"learner_id"`
	PathID              string               `json:"path_id"`
	RecommendedSequence []string             `json:"recommended_sequence"`
	CurrentPosition     int                  `json:"current_position"`
	EstimatedWeeks      int                  `json:"estimated_completion_time"`
	Pacing              PacingRecommendation `json:"pacing_recommendations"`
	SupportResources    []SupportResource    `json:"support_resources"`
	Checkpoints         []Checkpoint         `json:"checkpoints"`
	AdaptiveAdjustments []AdaptiveAdjustment `json:"adaptive_adjustments"`
}

// PacingRecommendation schedules study sessions over a week.
type PacingRecommendation struct {
	SessionsPerWeek int   `json:"sessions_per_week"`
	SessionDuration int   `json:"session_duration"` // minutes
	BreakFrequency  int   `json:"break_frequency"`  // minutes
	ReviewIntervals []int `json:"review_intervals"` // days
}

// SupportResource is a recommended supplementary material.
type SupportResource struct {
	Type              string   `json:"type"` // video, text, interactive, assessment, practice
	Title             string   `json:"title"`
	URL               string   `json:"url"`
	DifficultyLevel   int      `json:"difficulty_level"`
	EstimatedDuration int      `json:"estimated_duration"` // minutes
	RecommendedFor    []string `json:"recommended_for"`
}

// Checkpoint marks a knowledge check or milestone along a path.
type Checkpoint struct {
	ID              string   `json:"id"`
	Position        int      `json:"position"`
	Title           string   `json:"title"`
	Type            string   `json:"type"` // knowledge_check, milestone
	Requirements    []string `json:"requirements"`
	SuccessCriteria []string `json:"success_criteria"`
}

// AdaptiveAdjustment records one adaptation rule firing. Entries are
// appended, never overwritten.
type AdaptiveAdjustment struct {
	AdjustmentID     string    `json:"adjustment_id"`
	TriggerCondition string    `json:"trigger_condition"`
	AdjustmentType   string    `json:"adjustment_type"` // difficulty, pacing, resources, sequence
	Reason           string    `json:"reason"`
	AppliedDate      time.Time `json:"applied_date"`
}

// RecentActivity summarizes the last seven days of study.
type RecentActivity struct {
	RecentSessions  []DailyActivity `json:"recent_sessions"`
	TotalStudyTime  int             `json:"total_study_time"`
	ConceptsLearned int             `json:"concepts_learned"`
	AverageMood     float64         `json:"average_mood"`
}

// ProgressSummary is the tracker's aggregate view of one learner.
type ProgressSummary struct {
	OverallProgress     int              `json:"overall_progress"`
	ActiveModules       []ModuleProgress `json:"active_modules"`
	CompletedModules    []ModuleProgress `json:"completed_modules"`
	RecentActivity      RecentActivity   `json:"recent_activity"`
	UpcomingMilestones  []Milestone      `json:"upcoming_milestones"`
	CompletedMilestones []Milestone      `json:"completed_milestones"`
	StudyStreak         int              `json:"study_streak"`
	PerformanceTrend    string           `json:"performance_trend"`
}

// AreaPerformance aggregates session metrics per learning area.
type AreaPerformance struct {
	AvgScore      float64 `json:"avg_score"`
	AvgTimeSpent  float64 `json:"avg_time_spent"`
	AvgAttempts   float64 `json:"avg_attempts"`
	AvgConfidence float64 `json:"avg_confidence"`
	ExpectedTime  float64 `json:"expected_time"`
	RecordCount   int     `json:"record_count"`
}

// LearningAnalytics is the computed assessment of a learner's history.
// An area can appear in both strengths and weaknesses when different
// metrics fire.
type LearningAnalytics struct {
	OverallProgress int            `json:"overall_progress"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	Recommendations []string       `json:"recommendations"`
	NextSteps       []string       `json:"next_steps"`
	StudyPatterns   []StudyPattern `json:"study_patterns"`
}

// StudyPattern is one detected study habit.
type StudyPattern struct {
	PatternType     string  `json:"pattern_type"` // time_preference, content_preference, difficulty_preference
	Description     string  `json:"description"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Performance trend verdicts.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)
