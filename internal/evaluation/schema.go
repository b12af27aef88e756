package evaluation

import (
	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/llm"
)

// EvaluationSchema constrains the evaluator reply to one rating per
// competency of the built-in taxonomy.
var EvaluationSchema = newEvaluationSchema(assessment.CompetencyNames())

func newEvaluationSchema(names []string) *llm.Schema {
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}

	return &llm.Schema{
		Name:        "competency-evaluation",
		Description: "Scores and justifications for each professional competency",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"competencies": map[string]any{
					"type":     "array",
					"minItems": len(names),
					"maxItems": len(names),
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"competency": map[string]any{
								"type":        "string",
								"enum":        enum,
								"description": "Competency name exactly as given in the prompt",
							},
							"score": map[string]any{
								"type":        "integer",
								"minimum":     assessment.MinScore,
								"maximum":     assessment.MaxScore,
								"description": "Score from 1 to 5 according to the rubric",
							},
							"justification": map[string]any{
								"type":        "string",
								"description": "Why this score was given, citing the candidate's responses",
							},
						},
						"required":             []any{"competency", "score", "justification"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"competencies"},
			"additionalProperties": false,
		},
	}
}
