package domain

import "time"

// CaseContext narrows clinical case analysis to a practice setting.
type CaseContext string

const (
	ContextGeneral       CaseContext = "general"
	ContextOncology      CaseContext = "oncology"
	ContextClinicalTrial CaseContext = "clinical_trial"
)

// PatientInfo is the caller-supplied patient description for case
// analysis.
type PatientInfo struct {
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Diagnosis         string   `json:"diagnosis"`
	Stage             string   `json:"stage,omitempty"`
	TreatmentProtocol string   `json:"treatment_protocol,omitempty"`
	GeneticMarkers    []string `json:"genetic_markers,omitempty"`
}

// SymptomExplanation pairs a presenting symptom with its canned clinical
// meaning.
type SymptomExplanation struct {
	Symptom     string `json:"symptom"`
	Explanation string `json:"explanation"`
}

// ScoredDiagnosis is a suggestion engine result.
type ScoredDiagnosis struct {
	Diagnosis NursingDiagnosis `json:"diagnosis"`
	Score     int              `json:"score"`
}

// CaseAnalysis is the aggregate produced by the case analyzer. List
// ordering is part of the output contract.
type CaseAnalysis struct {
	PatientSummary           string               `json:"patient_summary"`
	SymptomAnalysis          []SymptomExplanation `json:"symptom_analysis"`
	PossibleDiagnoses        []ScoredDiagnosis    `json:"possible_nursing_diagnoses"`
	RelevantMedications      []Medication         `json:"relevant_medications"`
	RelevantLabs             []LabValue           `json:"relevant_labs"`
	NursingPriorities        []string             `json:"nursing_priorities"`
	RecommendedInterventions []string             `json:"recommended_interventions"`
	MonitoringParameters     []string             `json:"monitoring_parameters"`
	PatientEducation         []string             `json:"patient_education"`
	ExpectedOutcomes         []string             `json:"expected_outcomes"`
	RiskFactors              []string             `json:"risk_factors"`
}

// PriorityLevel orders care plan diagnoses.
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "high"
	PriorityMedium PriorityLevel = "medium"
	PriorityLow    PriorityLevel = "low"
)

// DiagnosisAnalysis is the per-label metadata block of a care plan.
type DiagnosisAnalysis struct {
	Diagnosis      string        `json:"diagnosis"`
	Category       string        `json:"category"`
	Definition     string        `json:"definition"`
	RiskFactors    []string      `json:"risk_factors,omitempty"`
	RelatedFactors []string      `json:"related_factors,omitempty"`
	PriorityLevel  PriorityLevel `json:"priority_level"`
}

// DiagnosisTimeframe pairs a diagnosis label with its goal timeframes.
type DiagnosisTimeframe struct {
	Diagnosis string `json:"diagnosis"`
	Timeframe string `json:"timeframe"`
}

// RankedDiagnosis is one entry of a care plan's priority ordering.
type RankedDiagnosis struct {
	Diagnosis string        `json:"diagnosis"`
	Priority  PriorityLevel `json:"priority"`
}

// CarePlan is the composed plan for a set of diagnosis labels. Section
// order (analysis, goals, interventions, rationale, evaluation criteria,
// timeframe, priority ranking) is part of the output contract.
type CarePlan struct {
	DiagnosisAnalysis  []DiagnosisAnalysis  `json:"diagnosis_analysis"`
	Goals              []string             `json:"patient_goals"`
	Interventions      []string             `json:"nursing_interventions"`
	Rationale          []string             `json:"rationale"`
	EvaluationCriteria []string             `json:"evaluation_criteria"`
	Timeframes         []DiagnosisTimeframe `json:"timeframes"`
	PriorityRanking    []RankedDiagnosis    `json:"priority_ranking"`
}

// NoteType selects the note template of the vault integration.
type NoteType string

const (
	NoteDaily     NoteType = "daily"
	NoteConcept   NoteType = "concept"
	NoteCaseStudy NoteType = "case_study"
)

// Note is a fully composed vault document after persistence. Warning
// carries a message when the note could not be written to the vault
// and landed in the fallback directory instead.
type Note struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Type      NoteType  `json:"type"`
	Tags      []string  `json:"tags"`
	Content   string    `json:"content"`
	Preview   string    `json:"preview"`
	Warning   string    `json:"warning,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ResearchStudy is one literature entry of the research catalog.
type ResearchStudy struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Year          int      `json:"year"`
	Journal       string   `json:"journal"`
	EvidenceLevel string   `json:"evidence_level"`
	Summary       string   `json:"summary"`
	KeyFindings   []string `json:"key_findings"`
}

// ResearchSummary is the aggregate answer of the research assistant.
type ResearchSummary struct {
	SearchQuery           string          `json:"search_query"`
	ResearchArea          string          `json:"research_area"`
	EvidenceLevel         string          `json:"evidence_level"`
	Summary               string          `json:"summary"`
	KeyFindings           []string        `json:"key_findings"`
	ClinicalImplications  []string        `json:"clinical_implications"`
	NursingConsiderations []string        `json:"nursing_considerations"`
	RecentStudies         []ResearchStudy `json:"recent_studies"`
	Recommendations       []string        `json:"recommendations"`
	FutureResearch        []string        `json:"future_research"`
}
