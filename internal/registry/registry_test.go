package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicationRegistry_Get(t *testing.T) {
	r := NewMedicationRegistry()

	m, ok := r.Get("morphine")
	require.True(t, ok)
	assert.Equal(t, "Morphine", m.Name)
	assert.Equal(t, "모르핀", m.NameKorean)
	assert.Equal(t, "Opioid Analgesic", m.Category)

	_, ok = r.Get("aspirin")
	assert.False(t, ok)
}

func TestMedicationRegistry_Search(t *testing.T) {
	r := NewMedicationRegistry()

	results := r.Search("모르핀")
	require.Len(t, results, 1)
	assert.Equal(t, "morphine", results[0].ID)

	// Category match is case-insensitive.
	results = r.Search("ANTICOAGULANT")
	require.Len(t, results, 1)
	assert.Equal(t, "heparin", results[0].ID)

	assert.Empty(t, r.Search("존재하지않는약물"))
}

func TestMedicationRegistry_GetByCategory(t *testing.T) {
	r := NewMedicationRegistry()

	results := r.GetByCategory("loop diuretic")
	require.Len(t, results, 1)
	assert.Equal(t, "furosemide", results[0].ID)

	results = r.GetByCategory("마약성 진통제")
	require.Len(t, results, 1)
	assert.Equal(t, "morphine", results[0].ID)

	// Substring of a category must not match.
	assert.Empty(t, r.GetByCategory("diuretic"))
}

func TestMedicationRegistry_All(t *testing.T) {
	r := NewMedicationRegistry()

	all := r.All()
	require.Len(t, all, 7)
	assert.Equal(t, "morphine", all[0].ID)
	assert.Equal(t, "furosemide", all[6].ID)
}

func TestLabValueRegistry_Get(t *testing.T) {
	r := NewLabValueRegistry()

	lv, ok := r.Get("hemoglobin")
	require.True(t, ok)
	assert.Equal(t, "13.5-17.5 g/dL", lv.NormalRange.AdultMale)
	assert.Equal(t, "12.0-16.0 g/dL", lv.NormalRange.AdultFemale)
	assert.Equal(t, "<7.0 g/dL", lv.CriticalValues.Low)

	lv, ok = r.Get("glucose")
	require.True(t, ok)
	assert.True(t, lv.FastingRequired)
}

func TestLabValueRegistry_Search(t *testing.T) {
	r := NewLabValueRegistry()

	results := r.Search("cbc")
	require.Len(t, results, 3)
	assert.Equal(t, "hemoglobin", results[0].ID)
	assert.Equal(t, "wbc", results[1].ID)
	assert.Equal(t, "platelet", results[2].ID)

	results = r.Search("칼륨")
	require.Len(t, results, 1)
	assert.Equal(t, "potassium", results[0].ID)
}

func TestLabValueRegistry_GetByCategory(t *testing.T) {
	r := NewLabValueRegistry()

	results := r.GetByCategory("coagulation")
	require.Len(t, results, 2)
	assert.Equal(t, "pt", results[0].ID)
	assert.Equal(t, "inr", results[1].ID)
}

func TestDiagnosisRegistry_Get(t *testing.T) {
	r := NewDiagnosisRegistry()

	d, ok := r.Get("00132")
	require.True(t, ok)
	assert.Equal(t, "Acute Pain", d.NameEnglish)
	assert.Equal(t, "급성 통증", d.NameKorean)
	assert.NotEmpty(t, d.DefiningCharacteristics)
	assert.Empty(t, d.RiskFactors)

	// Risk-type diagnoses carry risk factors instead of defining
	// characteristics.
	d, ok = r.Get("00004")
	require.True(t, ok)
	assert.Empty(t, d.DefiningCharacteristics)
	assert.Empty(t, d.RelatedFactors)
	assert.NotEmpty(t, d.RiskFactors)
}

func TestDiagnosisRegistry_Search(t *testing.T) {
	r := NewDiagnosisRegistry()

	results := r.Search("통증")
	require.NotEmpty(t, results)
	codes := make([]string, 0, len(results))
	for _, d := range results {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "00132")
}

func TestDiagnosisRegistry_GetByDomain(t *testing.T) {
	r := NewDiagnosisRegistry()

	results := r.GetByDomain("Safety/Protection")
	require.Len(t, results, 2)
	assert.Equal(t, "00004", results[0].Code)
	assert.Equal(t, "00155", results[1].Code)

	results = r.GetByDomain("안전/보호")
	assert.Len(t, results, 2)
}

func TestDiagnosisRegistry_Suggest(t *testing.T) {
	r := NewDiagnosisRegistry()

	suggestions := r.Suggest([]string{"통증 호소", "수면장애"})
	require.NotEmpty(t, suggestions)

	// Acute pain has both symptoms among its defining characteristics
	// and must rank first.
	assert.Equal(t, "00132", suggestions[0].Diagnosis.Code)
	assert.Equal(t, 4, suggestions[0].Score)

	// Scores are non-increasing and capped at five suggestions.
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
	assert.LessOrEqual(t, len(suggestions), 5)
}

func TestDiagnosisRegistry_SuggestNoMatch(t *testing.T) {
	r := NewDiagnosisRegistry()

	assert.Empty(t, r.Suggest([]string{"전혀관련없는증상"}))
	assert.Empty(t, r.Suggest(nil))
}

func TestProtocolRegistry_Get(t *testing.T) {
	r := NewProtocolRegistry()

	p, ok := r.Get("cpr")
	require.True(t, ok)
	assert.Equal(t, "심폐소생술", p.NameKorean)
	require.Len(t, p.Procedure, 10)
	for i, step := range p.Procedure {
		assert.Equal(t, i+1, step.Step)
		assert.NotEmpty(t, step.Action)
		assert.NotEmpty(t, step.Rationale)
	}
}

func TestProtocolRegistry_Search(t *testing.T) {
	r := NewProtocolRegistry()

	results := r.Search("수혈")
	require.Len(t, results, 1)
	assert.Equal(t, "blood_transfusion", results[0].ID)

	results = r.Search("respiratory")
	require.Len(t, results, 1)
	assert.Equal(t, "oxygen_therapy", results[0].ID)
}

func TestProtocolRegistry_GetByCategory(t *testing.T) {
	r := NewProtocolRegistry()

	results := r.GetByCategory("Emergency")
	require.Len(t, results, 1)
	assert.Equal(t, "cpr", results[0].ID)

	results = r.GetByCategory("응급")
	assert.Len(t, results, 1)
}

func TestCaseRegistry_Get(t *testing.T) {
	r := NewCaseRegistry()

	c, ok := r.Get("dka")
	require.True(t, ok)
	assert.Equal(t, "당뇨병성 케톤산증", c.TitleKorean)
	assert.Equal(t, 25, c.Patient.Age)
	assert.Equal(t, "+++", c.LabResults["Ketones"].Value)
	assert.Equal(t, 5, c.VitalSigns.PainScore)
}

func TestCaseRegistry_GetByCategory(t *testing.T) {
	r := NewCaseRegistry()

	results := r.GetByCategory("oncology")
	require.Len(t, results, 1)
	assert.Equal(t, "neutropenia", results[0].ID)

	results = r.GetByCategory("Oncology")
	require.Len(t, results, 1)
	assert.Equal(t, "neutropenia", results[0].ID)
}

func TestCaseRegistry_Search(t *testing.T) {
	r := NewCaseRegistry()

	results := r.Search("stroke")
	require.Len(t, results, 1)
	assert.Equal(t, "stroke", results[0].ID)

	results = r.Search("당뇨병성")
	require.NotEmpty(t, results)
	assert.Equal(t, "dka", results[0].ID)
}

func TestKnowledgeStore_Lookup(t *testing.T) {
	s := NewKnowledgeStore()

	entry := s.Lookup("종양간호", "basic", "")
	assert.Equal(t, "종양간호학 기초", entry.Title)
	assert.NotEmpty(t, entry.Definition)
	assert.Len(t, entry.KeyPoints, 5)
	assert.Empty(t, entry.SpecialtyFocus)

	entry = s.Lookup("유전자치료", "advanced", "")
	assert.Equal(t, "유전자 치료 고급", entry.Title)
	assert.NotEmpty(t, entry.AdvancedConcepts)
	assert.NotEmpty(t, entry.RecentResearch)
}

func TestKnowledgeStore_LookupFallback(t *testing.T) {
	s := NewKnowledgeStore()

	entry := s.Lookup("아동간호", "basic", "")
	assert.Equal(t, "아동간호 (basic)", entry.Title)
	assert.Contains(t, entry.Definition, "아동간호")
	assert.Len(t, entry.KeyPoints, 3)
}

func TestKnowledgeStore_LookupSpecialty(t *testing.T) {
	s := NewKnowledgeStore()

	entry := s.Lookup("종양간호", "intermediate", "oncology")
	assert.Equal(t, "oncology 전문 분야에 특화된 내용", entry.SpecialtyFocus)
	require.Len(t, entry.SpecializedApplications, 5)
	assert.Equal(t, "암 관련 실무 적용", entry.SpecializedApplications[0])

	// Unknown specialties leave the entry untouched.
	entry = s.Lookup("종양간호", "intermediate", "cardiology")
	assert.Empty(t, entry.SpecialtyFocus)
	assert.Empty(t, entry.SpecializedApplications)
}
