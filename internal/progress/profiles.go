// Package progress implements the learner progress subsystem: profile
// management, session tracking, learning analytics, personalized path
// generation and the optional persistent store behind them.
package progress

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// ProfileManager keeps learner profiles in memory, keyed by learner id.
// All methods are safe for concurrent use.
type ProfileManager struct {
	logger *logrus.Logger

	mu       sync.RWMutex
	profiles map[string]*domain.LearnerProfile

	now func() time.Time
}

// NewProfileManager creates a new profile manager.
func NewProfileManager(logger *logrus.Logger) *ProfileManager {
	return &ProfileManager{
		logger:   logger,
		profiles: make(map[string]*domain.LearnerProfile),
		now:      time.Now,
	}
}

// ProfileUpdate carries a partial profile change. Nil sections are left
// untouched; present sections replace the stored section wholesale.
type ProfileUpdate struct {
	Name                *string
	Email               *string
	Background          *domain.LearnerBackground
	LearningPreferences *domain.LearningPreferences
	CareerGoals         *domain.CareerGoals
	CurrentStatus       *domain.LearnerStatus
}

// Create registers a new profile. Zero-valued fields of the request are
// filled with defaults suited to a Korean nursing student starting an
// oncology track.
func (m *ProfileManager) Create(req domain.LearnerProfile) *domain.LearnerProfile {
	now := m.now()

	profile := &domain.LearnerProfile{
		ID:                  req.ID,
		Name:                req.Name,
		Email:               req.Email,
		CreatedAt:           now,
		LastActive:          now,
		Background:          req.Background,
		LearningPreferences: req.LearningPreferences,
		CareerGoals:         req.CareerGoals,
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Background.EducationLevel == "" {
		profile.Background.EducationLevel = "bachelor"
	}
	if profile.Background.NativeLanguage == "" {
		profile.Background.NativeLanguage = "Korean"
	}
	if profile.Background.EnglishLevel == "" {
		profile.Background.EnglishLevel = "intermediate"
	}
	if profile.Background.MedicalTerminology == 0 {
		profile.Background.MedicalTerminology = 3
	}
	if profile.LearningPreferences.DifficultyPreference == "" {
		profile.LearningPreferences.DifficultyPreference = "gradual"
	}
	if profile.LearningPreferences.InteractionType == "" {
		profile.LearningPreferences.InteractionType = "self_paced"
	}
	if profile.LearningPreferences.SessionDuration == 0 {
		profile.LearningPreferences.SessionDuration = 60
	}
	if profile.LearningPreferences.BreakIntervals == 0 {
		profile.LearningPreferences.BreakIntervals = 15
	}
	if profile.LearningPreferences.WeeklyHours == 0 {
		profile.LearningPreferences.WeeklyHours = 20
	}
	if len(profile.CareerGoals.TargetSpecialty) == 0 {
		profile.CareerGoals.TargetSpecialty = []string{"oncology"}
	}
	if profile.CareerGoals.WorkSetting == "" {
		profile.CareerGoals.WorkSetting = "hospital"
	}
	if profile.CareerGoals.Timeline.IsZero() {
		profile.CareerGoals.Timeline = now.AddDate(1, 0, 0)
	}

	m.mu.Lock()
	m.profiles[profile.ID] = profile
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"learner_id": profile.ID,
		"specialty":  profile.CareerGoals.TargetSpecialty,
	}).Info("Created learner profile")

	return cloneProfile(profile)
}

// Get returns a copy of the profile, or false when unknown.
func (m *ProfileManager) Get(id string) (*domain.LearnerProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[id]
	if !ok {
		return nil, false
	}
	return cloneProfile(profile), true
}

// Update applies a partial update and bumps LastActive. It returns
// false when the profile does not exist.
func (m *ProfileManager) Update(id string, update ProfileUpdate) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.profiles[id]
	if !ok {
		return false
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.Background != nil {
		profile.Background = *update.Background
	}
	if update.LearningPreferences != nil {
		profile.LearningPreferences = *update.LearningPreferences
	}
	if update.CareerGoals != nil {
		profile.CareerGoals = *update.CareerGoals
	}
	if update.CurrentStatus != nil {
		profile.CurrentStatus = *update.CurrentStatus
	}
	profile.LastActive = m.now()

	return true
}

func cloneProfile(p *domain.LearnerProfile) *domain.LearnerProfile {
	clone := *p
	clone.CareerGoals.TargetSpecialty = append([]string(nil), p.CareerGoals.TargetSpecialty...)
	clone.CareerGoals.CertificationGoals = append([]string(nil), p.CareerGoals.CertificationGoals...)
	clone.CurrentStatus.ActiveModules = append([]string(nil), p.CurrentStatus.ActiveModules...)
	clone.CurrentStatus.CompletedModules = append([]string(nil), p.CurrentStatus.CompletedModules...)
	clone.CurrentStatus.StrugglingAreas = append([]string(nil), p.CurrentStatus.StrugglingAreas...)
	clone.CurrentStatus.StrengthAreas = append([]string(nil), p.CurrentStatus.StrengthAreas...)
	return &clone
}
