package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/session"
	"github.com/abhisek/compass/internal/store"
)

func fullResult(score int) *evaluation.Result {
	r := &evaluation.Result{}
	for _, n := range assessment.CompetencyNames() {
		r.Competencies = append(r.Competencies, evaluation.CompetencyScore{
			Competency:    n,
			Score:         score,
			Justification: "because " + n,
		})
	}
	return r
}

func TestValidateAnswer(t *testing.T) {
	var verr *session.ValidationError

	err := validateAnswer("   short   ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 5, verr.Length)

	assert.ErrorAs(t, validateAnswer(""), &verr)
	assert.NoError(t, validateAnswer("exactly 10"))
	assert.NoError(t, validateAnswer("  I led the migration of our billing system.  "))
}

func TestValidateAnswerCountsRunes(t *testing.T) {
	assert.Error(t, validateAnswer("ééééééééé"))
	assert.NoError(t, validateAnswer("éééééééééé"))
}

func TestDescribeEvalError(t *testing.T) {
	cfgErr := &evaluation.ConfigError{Err: errors.New("OPENAI_API_KEY not set")}
	assert.Equal(t, "Evaluation is not configured: OPENAI_API_KEY not set", describeEvalError(cfgErr))

	got := describeEvalError(errors.New("boom"))
	assert.True(t, strings.HasPrefix(got, "Evaluation failed: "), got)
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, fullResult(5), false)
	out := buf.String()

	assert.Contains(t, out, "Competency Scores")
	assert.Contains(t, out, "Total Score: 25/25 (100.0%)")
	assert.Contains(t, out, evaluation.TierOutstanding.Message())
	assert.NotContains(t, out, "because ")

	buf.Reset()
	printResults(&buf, fullResult(1), true)
	out = buf.String()

	assert.Contains(t, out, "Total Score: 5/25 (20.0%)")
	assert.Contains(t, out, evaluation.TierDevelopmentNeeded.Message())
	for _, n := range assessment.CompetencyNames() {
		assert.Contains(t, out, "because "+n)
	}
}

func TestPrintQuestions(t *testing.T) {
	var buf bytes.Buffer
	printQuestions(&buf)
	out := buf.String()

	for _, q := range assessment.Questions() {
		assert.Contains(t, out, q.Text)
	}
	assert.True(t, strings.HasPrefix(out, " 1. "))
}

func TestPrintCompetencies(t *testing.T) {
	var buf bytes.Buffer
	printCompetencies(&buf)
	out := buf.String()

	for _, c := range assessment.Competencies() {
		assert.Contains(t, out, c.Name)
		assert.Contains(t, out, c.Definition)
	}
	assert.Contains(t, out, "Evidence: Q")
	assert.Contains(t, out, "  5: ")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil, false)
	assert.Equal(t, "No completed assessments yet.\n", buf.String())

	events := []store.AssessmentEvent{{
		ID:        7,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		AssessmentEventData: store.AssessmentEventData{
			Model:      "gpt-4o",
			Total:      21,
			Possible:   25,
			Percentage: 84,
			Tier:       string(evaluation.TierOutstanding),
			Scores:     []store.CompetencyScore{{Competency: "Adaptability", Score: 5}},
		},
	}}

	buf.Reset()
	printHistory(&buf, events, false)
	out := buf.String()
	assert.Contains(t, out, "21/25")
	assert.Contains(t, out, "84.0")
	assert.Contains(t, out, "Outstanding")
	assert.NotContains(t, out, "scored by")

	buf.Reset()
	printHistory(&buf, events, true)
	out = buf.String()
	assert.Contains(t, out, "Adaptability")
	assert.Contains(t, out, "scored by gpt-4o")
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", buf.String())

	buf.Reset()
	printUsage(&buf,
		[]store.LLMUsage{{Purpose: "evaluation", Calls: 2, InputTokens: 3000, OutputTokens: 400, AvgLatencyMs: 900}},
		[]store.LLMUsage{{Model: "no-such-model", Calls: 2, InputTokens: 3000, OutputTokens: 400}},
	)
	out := buf.String()
	assert.Contains(t, out, "evaluation")
	assert.Contains(t, out, "3400")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: no-such-model")
}

func TestPrintLLMEvent(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvent(&buf, &store.LLMRequestEvent{
		ID: 3,
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:    "mock",
			Model:       "mock-model",
			Purpose:     "evaluation",
			Success:     true,
			RequestBody: `{"messages":[]}`,
		},
	})
	out := buf.String()
	assert.Contains(t, out, "Provider:  mock")
	assert.Contains(t, out, `{"messages":[]}`)
	assert.Contains(t, out, "(not captured)")
	assert.NotContains(t, out, "Error:")
}

func TestQueryOpts(t *testing.T) {
	opts := queryOpts(10, 0, 0)
	assert.Equal(t, 10, opts.Limit)
	assert.True(t, opts.From.IsZero())
	assert.True(t, opts.To.IsZero())

	opts = queryOpts(0, 48*time.Hour, time.Hour)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), opts.From, time.Minute)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), opts.To, time.Minute)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
