package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nursing-tutor-mcp-server/internal/domain"
	"github.com/nursing-tutor-mcp-server/internal/registry"
)

// KnowledgeService answers free-form knowledge queries. Topics that
// mention medications, lab tests, nursing diagnoses or protocols are
// routed to the matching registry; everything else resolves against
// the tiered knowledge topic store.
type KnowledgeService struct {
	logger      *logrus.Logger
	medications *registry.MedicationRegistry
	labValues   *registry.LabValueRegistry
	diagnoses   *registry.DiagnosisRegistry
	protocols   *registry.ProtocolRegistry
	knowledge   *registry.KnowledgeStore
}

// NewKnowledgeService creates a new knowledge service.
func NewKnowledgeService(
	logger *logrus.Logger,
	medications *registry.MedicationRegistry,
	labValues *registry.LabValueRegistry,
	diagnoses *registry.DiagnosisRegistry,
	protocols *registry.ProtocolRegistry,
	knowledge *registry.KnowledgeStore,
) *KnowledgeService {
	return &KnowledgeService{
		logger:      logger,
		medications: medications,
		labValues:   labValues,
		diagnoses:   diagnoses,
		protocols:   protocols,
		knowledge:   knowledge,
	}
}

// Query dispatches the topic. Keyword checks run in a fixed order
// (medications, labs, diagnoses, protocols) so a topic naming several
// areas routes to the first match.
func (s *KnowledgeService) Query(ctx context.Context, topic, level, specialty string) (*domain.KnowledgeAnswer, error) {
	if topic == "" {
		return nil, domain.NewValidationError("topic", "topic is required", topic)
	}
	if level != domain.LevelBasic && level != domain.LevelIntermediate && level != domain.LevelAdvanced {
		return nil, domain.NewValidationError("level", "level must be basic, intermediate or advanced", level)
	}

	s.logger.WithFields(logrus.Fields{
		"topic":     topic,
		"level":     level,
		"specialty": specialty,
	}).Debug("Resolving knowledge query")

	answer := &domain.KnowledgeAnswer{Query: topic, Level: level}

	switch {
	case containsAny(topic, "약물", "medication", "drug"):
		answer.Kind = domain.KindMedications
		answer.Medications = s.medications.Search(topic)
	case containsAny(topic, "검사", "lab", "수치"):
		answer.Kind = domain.KindLabValues
		answer.LabValues = s.labValues.Search(topic)
	case containsAny(topic, "간호진단", "diagnosis", "NANDA"):
		answer.Kind = domain.KindDiagnoses
		answer.Diagnoses = s.diagnoses.Search(topic)
	case containsAny(topic, "프로토콜", "protocol", "술기"):
		answer.Kind = domain.KindProtocols
		answer.Protocols = s.protocols.Search(topic)
	default:
		answer.Kind = domain.KindTopic
		content := s.knowledge.Lookup(topic, level, specialty)
		answer.Topic = &content
	}

	return answer, nil
}

func containsAny(topic string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(topic, keyword) {
			return true
		}
	}
	return false
}
