package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions_Count(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 20)
	assert.Equal(t, 20, QuestionCount)
	for i, q := range qs {
		assert.Equal(t, i, q.Index)
		assert.NotEmpty(t, q.Text)
	}
}

func TestGetQuestion_OutOfRange(t *testing.T) {
	_, err := GetQuestion(20)
	assert.Error(t, err)
	_, err = GetQuestion(-1)
	assert.Error(t, err)

	q, err := GetQuestion(11)
	require.NoError(t, err)
	assert.Contains(t, q.Text, "reputation of your employer")
}

func TestCompetencies_Order(t *testing.T) {
	want := []string{
		"Risk and Adaptability",
		"Work Style and Approach",
		"Motivation and Passion",
		"Interpersonal Skills and Stress Management",
		"Self-awareness and Learning Orientation",
	}
	assert.Equal(t, want, CompetencyNames())

	comps := Competencies()
	require.Len(t, comps, len(want))
	for i, c := range comps {
		assert.Equal(t, want[i], c.Name)
	}
}

func TestSeedTaxonomy_WellFormed(t *testing.T) {
	comps := Competencies()
	require.NoError(t, ValidateTaxonomy(QuestionCount, comps))
	assert.Empty(t, Uncovered(QuestionCount, comps), "every question should evidence a competency")

	for _, c := range comps {
		assert.GreaterOrEqual(t, len(c.Evidence), 3, c.Name)
		assert.LessOrEqual(t, len(c.Evidence), 5, c.Name)
	}
}

func TestSeedTaxonomy_PreservesQuestionElevenMapping(t *testing.T) {
	c := GetCompetency("Self-awareness and Learning Orientation")
	require.NotNil(t, c)
	assert.Equal(t, []int{3, 4, 11, 15, 19}, c.Evidence)
	assert.Equal(t, []string{"Self-awareness and Learning Orientation"}, CompetenciesForQuestion(11))
}

func TestGetCompetency_NotFound(t *testing.T) {
	assert.Nil(t, GetCompetency("nonexistent"))
}

func TestCompetencies_ReturnsCopies(t *testing.T) {
	comps := Competencies()
	comps[0].Evidence[0] = 99
	comps[0].Rubric[1] = "changed"

	fresh := GetCompetency(comps[0].Name)
	require.NotNil(t, fresh)
	assert.Equal(t, 0, fresh.Evidence[0])
	assert.Equal(t, "Avoids risks; struggles with adaptability.", fresh.Rubric[1])
}

func TestValidateTaxonomy_Failures(t *testing.T) {
	full := Rubric{1: "low", 3: "mid", 5: "high"}
	tests := []struct {
		name  string
		comps []Competency
	}{
		{"empty name", []Competency{{Rubric: full, Evidence: []int{0}}}},
		{"duplicate", []Competency{
			{Name: "A", Rubric: full, Evidence: []int{0}},
			{Name: "A", Rubric: full, Evidence: []int{1}},
		}},
		{"missing rubric level", []Competency{{Name: "A", Rubric: Rubric{1: "x", 5: "y"}, Evidence: []int{0}}}},
		{"no evidence", []Competency{{Name: "A", Rubric: full}}},
		{"index out of range", []Competency{{Name: "A", Rubric: full, Evidence: []int{20}}}},
		{"negative index", []Competency{{Name: "A", Rubric: full, Evidence: []int{-1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateTaxonomy(20, tt.comps))
		})
	}
}

func TestUncovered(t *testing.T) {
	comps := []Competency{{Name: "A", Evidence: []int{0, 2}}}
	assert.Equal(t, []int{1, 3}, Uncovered(4, comps))
}
