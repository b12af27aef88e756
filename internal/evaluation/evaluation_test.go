package evaluation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/llm"
)

// sampleAnswers returns one distinct, valid answer per question.
func sampleAnswers() []assessment.Answer {
	answers := make([]assessment.Answer, assessment.QuestionCount)
	for i := range answers {
		answers[i] = assessment.Answer{
			QuestionIndex: i,
			Text:          fmt.Sprintf("Answer number %02d with enough detail.", i),
		}
	}
	return answers
}

// replyWithScores builds an evaluator reply scoring the taxonomy in order.
func replyWithScores(t *testing.T, scores ...int) json.RawMessage {
	t.Helper()
	names := assessment.CompetencyNames()
	if len(scores) != len(names) {
		t.Fatalf("need %d scores, got %d", len(names), len(scores))
	}
	r := Result{}
	for i, n := range names {
		r.Competencies = append(r.Competencies, CompetencyScore{
			Competency:    n,
			Score:         scores[i],
			Justification: "Justification for " + n,
		})
	}
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func mockReply(t *testing.T, scores ...int) llm.MockResponse {
	return llm.MockResponse{Content: replyWithScores(t, scores...)}
}
