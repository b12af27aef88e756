package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/compass/internal/assessment"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	answers := sampleAnswers()
	first := Prompt(answers)
	second := Prompt(answers)
	assert.Equal(t, first, second)
}

func TestBuildPrompt_ContainsTaxonomyAndEvidence(t *testing.T) {
	answers := sampleAnswers()
	questions := assessment.Questions()
	prompt := Prompt(answers)

	for _, c := range assessment.Competencies() {
		assert.Contains(t, prompt, "Competency: "+c.Name)
		assert.Contains(t, prompt, "Definition: "+c.Definition)
		for _, score := range assessment.RubricScores {
			assert.Contains(t, prompt, c.Rubric[score])
		}
		for _, idx := range c.Evidence {
			assert.Contains(t, prompt, "Question: "+questions[idx].Text+"\nResponse: "+answers[idx].Text)
		}
	}
}

func TestBuildPrompt_PreambleListsCompetenciesInOrder(t *testing.T) {
	prompt := Prompt(sampleAnswers())
	preamble, _, found := strings.Cut(prompt, "\nCompetency: ")
	require.True(t, found)

	last := -1
	for _, name := range assessment.CompetencyNames() {
		pos := strings.Index(preamble, `"competency": "`+name+`"`)
		require.GreaterOrEqual(t, pos, 0, "preamble should list %q", name)
		assert.Greater(t, pos, last, "%q out of order", name)
		last = pos
	}
	assert.Contains(t, preamble, `"justification"`)
	assert.Contains(t, preamble, "scoring rubric")
}

func TestBuildPrompt_SectionsFollowTaxonomyOrder(t *testing.T) {
	prompt := Prompt(sampleAnswers())

	last := -1
	for _, name := range assessment.CompetencyNames() {
		pos := strings.Index(prompt, "Competency: "+name+"\n")
		require.GreaterOrEqual(t, pos, 0)
		assert.Greater(t, pos, last)
		last = pos
	}
}

func TestBuildPrompt_SmallFixture(t *testing.T) {
	questions := []assessment.Question{{Index: 0, Text: "Q zero?"}, {Index: 1, Text: "Q one?"}}
	comps := []assessment.Competency{{
		Name:       "Grit",
		Definition: "Keeps going.",
		Rubric:     assessment.Rubric{1: "Quits.", 3: "Sometimes.", 5: "Always."},
		Evidence:   []int{1},
	}}
	answers := []assessment.Answer{{QuestionIndex: 0, Text: "first answer"}, {QuestionIndex: 1, Text: "second answer"}}

	prompt := BuildPrompt(questions, comps, answers)

	assert.True(t, strings.HasSuffix(prompt,
		"Competency: Grit\nDefinition: Keeps going.\nScoring Rubric:\n1: Quits.\n3: Sometimes.\n5: Always.\n\nQuestion: Q one?\nResponse: second answer\n"))
	assert.NotContains(t, prompt, "Q zero?")
}

func TestBuildPrompt_PanicsOnContractViolation(t *testing.T) {
	answers := sampleAnswers()

	assert.Panics(t, func() { Prompt(answers[:5]) }, "incomplete answers")

	shuffled := sampleAnswers()
	shuffled[3], shuffled[4] = shuffled[4], shuffled[3]
	assert.Panics(t, func() { Prompt(shuffled) }, "misordered answers")

	comps := assessment.Competencies()
	comps[0].Evidence = append(comps[0].Evidence, assessment.QuestionCount)
	assert.Panics(t, func() { BuildPrompt(assessment.Questions(), comps, answers) }, "evidence out of range")
}
