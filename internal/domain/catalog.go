// Package domain contains the core types shared across the nursing tutor
// server: reference catalog records, case analysis aggregates, learner
// progress state and configuration.
package domain

// Medication is a reference catalog entry for a drug commonly handled in
// nursing practice. Catalog entries are immutable once loaded.
type Medication struct {
	ID                    string      `json:"id"`
	Name                  string      `json:"name"`
	NameKorean            string      `json:"name_korean"`
	GenericName           string      `json:"generic_name"`
	Category              string      `json:"category"`
	CategoryKorean        string      `json:"category_korean"`
	Indications           []string    `json:"indications"`
	Contraindications     []string    `json:"contraindications"`
	Dosage                Dosage      `json:"dosage"`
	Route                 []string    `json:"route"`
	SideEffects           SideEffects `json:"side_effects"`
	NursingConsiderations []string    `json:"nursing_considerations"`
	PatientEducation      []string    `json:"patient_education"`
	Interactions          []string    `json:"interactions"`
	MonitoringParameters  []string    `json:"monitoring_parameters"`
}

// Dosage holds dosing guidance per age band.
type Dosage struct {
	Adult     string `json:"adult"`
	Pediatric string `json:"pediatric,omitempty"`
	Geriatric string `json:"geriatric,omitempty"`
}

// SideEffects splits adverse effects by severity.
type SideEffects struct {
	Common  []string `json:"common"`
	Serious []string `json:"serious"`
}

// LabValue is a reference catalog entry for a laboratory test.
type LabValue struct {
	ID                    string               `json:"id"`
	Name                  string               `json:"name"`
	NameKorean            string               `json:"name_korean"`
	Category              string               `json:"category"`
	NormalRange           NormalRange          `json:"normal_range"`
	Unit                  string               `json:"unit"`
	CriticalValues        CriticalValues       `json:"critical_values"`
	ClinicalSignificance  ClinicalSignificance `json:"clinical_significance"`
	NursingConsiderations []string             `json:"nursing_considerations"`
	SpecimenType          string               `json:"specimen_type"`
	FastingRequired       bool                 `json:"fasting_required"`
}

// NormalRange holds free-text range strings per population segment.
// Any field may be empty when the catalog has no segment-specific range.
type NormalRange struct {
	AdultMale    string `json:"adult_male,omitempty"`
	AdultFemale  string `json:"adult_female,omitempty"`
	AdultGeneral string `json:"adult_general,omitempty"`
	Pediatric    string `json:"pediatric,omitempty"`
	Geriatric    string `json:"geriatric,omitempty"`
}

// CriticalValues holds free-text critical thresholds. Either side may be
// absent.
type CriticalValues struct {
	Low  string `json:"low,omitempty"`
	High string `json:"high,omitempty"`
}

// ClinicalSignificance lists causes for abnormal results.
type ClinicalSignificance struct {
	Increased []string `json:"increased"`
	Decreased []string `json:"decreased"`
}

// NursingDiagnosis is a NANDA-style nursing diagnosis catalog entry.
// Risk-type diagnoses carry RiskFactors and leave
// DefiningCharacteristics/RelatedFactors empty; actual-problem diagnoses
// do the reverse. The two sets are mutually exclusive per entry.
type NursingDiagnosis struct {
	ID                      string        `json:"id"`
	Code                    string        `json:"code"`
	NameEnglish             string        `json:"name_english"`
	NameKorean              string        `json:"name_korean"`
	Domain                  DomainClass   `json:"domain"`
	Class                   DomainClass   `json:"class"`
	Definition              string        `json:"definition"`
	DefiningCharacteristics []string      `json:"defining_characteristics,omitempty"`
	RelatedFactors          []string      `json:"related_factors,omitempty"`
	RiskFactors             []string      `json:"risk_factors,omitempty"`
	AssociatedConditions    []string      `json:"associated_conditions,omitempty"`
	Interventions           Interventions `json:"nursing_interventions"`
	ExpectedOutcomes        []string      `json:"expected_outcomes"`
	EvaluationCriteria      []string      `json:"evaluation_criteria"`
}

// DomainClass pairs a taxonomy name with its localized counterpart.
type DomainClass struct {
	Name       string `json:"name"`
	NameKorean string `json:"name_korean"`
}

// Interventions splits nursing interventions by tier.
type Interventions struct {
	Priority  []string `json:"priority"`
	Suggested []string `json:"suggested"`
}

// ClinicalProtocol is a step-by-step nursing procedure reference.
type ClinicalProtocol struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	NameKorean            string          `json:"name_korean"`
	Category              string          `json:"category"`
	CategoryKorean        string          `json:"category_korean"`
	Purpose               string          `json:"purpose"`
	Indications           []string        `json:"indications"`
	Contraindications     []string        `json:"contraindications"`
	Equipment             []string        `json:"equipment"`
	Procedure             []ProcedureStep `json:"procedure"`
	Complications         []string        `json:"complications"`
	NursingConsiderations []string        `json:"nursing_considerations"`
	Documentation         []string        `json:"documentation"`
	References            []string        `json:"references"`
}

// ProcedureStep is one ordered step of a protocol. Steps are numbered
// 1..N with no gaps and render in step order.
type ProcedureStep struct {
	Step      int    `json:"step"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// ClinicalCase is a teaching case study catalog entry.
type ClinicalCase struct {
	ID                     string               `json:"id"`
	Title                  string               `json:"title"`
	TitleKorean            string               `json:"title_korean"`
	Category               string               `json:"category"`
	Patient                CasePatient          `json:"patient"`
	PresentingSymptoms     []string             `json:"presenting_symptoms"`
	VitalSigns             VitalSigns           `json:"vital_signs"`
	LabResults             map[string]LabResult `json:"lab_results"`
	ClinicalScenario       string               `json:"clinical_scenario"`
	NursingAssessment      []string             `json:"nursing_assessment"`
	NursingDiagnoses       []string             `json:"nursing_diagnoses"`
	ExpectedInterventions  []string             `json:"expected_interventions"`
	CriticalThinkingPoints []string             `json:"critical_thinking_points"`
}

// CasePatient is the embedded patient snapshot of a clinical case.
type CasePatient struct {
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	Diagnosis          string   `json:"diagnosis"`
	MedicalHistory     []string `json:"medical_history"`
	CurrentMedications []string `json:"current_medications"`
}

// VitalSigns is a point-in-time vital sign snapshot.
type VitalSigns struct {
	BloodPressure    string  `json:"blood_pressure"`
	HeartRate        int     `json:"heart_rate"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	Temperature      float64 `json:"temperature"`
	OxygenSaturation int     `json:"oxygen_saturation"`
	PainScore        int     `json:"pain"`
}

// LabResult is a test name -> value/unit/interpretation triple. Value
// stays a string because qualitative results ("+++") appear alongside
// numeric ones.
type LabResult struct {
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	Interpretation string `json:"interpretation"`
}

// KnowledgeContent is tiered explanatory content served by the knowledge
// topic store. Only the fields for the entry's level are populated:
// basic entries carry a definition and key points, intermediate entries
// a detailed explanation and clinical applications, advanced entries
// the advanced concepts, research and evidence fields. Learning
// objectives and related concepts appear at every level.
type KnowledgeContent struct {
	Title                string   `json:"title"`
	Definition           string   `json:"basic_definition,omitempty"`
	KeyPoints            []string `json:"key_points,omitempty"`
	DetailedExplanation  string   `json:"detailed_explanation,omitempty"`
	ClinicalApplications []string `json:"clinical_applications,omitempty"`
	AdvancedConcepts     string   `json:"advanced_concepts,omitempty"`
	RecentResearch       string   `json:"recent_research,omitempty"`
	ClinicalEvidence     string   `json:"clinical_evidence,omitempty"`
	LearningObjectives   []string `json:"learning_objectives"`
	RelatedConcepts      []string `json:"related_concepts"`

	// Specialty augmentation, present only when the caller supplied a
	// known specialty.
	SpecialtyFocus          string   `json:"specialty_focus,omitempty"`
	SpecializedApplications []string `json:"specialized_applications,omitempty"`
	SpecialtyConsiderations string   `json:"specialty_considerations,omitempty"`
}

// KnowledgeKind discriminates the union returned by a knowledge query:
// keyword dispatch routes to one of the reference registries, anything
// else falls through to the topic store.
type KnowledgeKind string

const (
	KindMedications KnowledgeKind = "medications"
	KindLabValues   KnowledgeKind = "lab_values"
	KindDiagnoses   KnowledgeKind = "nursing_diagnoses"
	KindProtocols   KnowledgeKind = "protocols"
	KindTopic       KnowledgeKind = "topic"
)

// KnowledgeAnswer is the dispatch result of a knowledge query. Exactly
// one payload field matching Kind is populated.
type KnowledgeAnswer struct {
	Kind        KnowledgeKind      `json:"kind"`
	Query       string             `json:"query"`
	Level       string             `json:"level"`
	Medications []Medication       `json:"medications,omitempty"`
	LabValues   []LabValue         `json:"lab_values,omitempty"`
	Diagnoses   []NursingDiagnosis `json:"nursing_diagnoses,omitempty"`
	Protocols   []ClinicalProtocol `json:"protocols,omitempty"`
	Topic       *KnowledgeContent  `json:"topic,omitempty"`
}

// Knowledge levels form a closed set.
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)
