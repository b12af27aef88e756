package llm

import "encoding/json"

// ratingSchema mirrors the shape of a single competency rating.
func ratingSchema() *Schema {
	return &Schema{
		Name:        "test-rating",
		Description: "A single competency rating",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"competency":    map[string]any{"type": "string"},
				"score":         map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"justification": map[string]any{"type": "string"},
				"tier":          map[string]any{"type": "string", "enum": []any{"low", "mid", "high"}},
			},
			"required":             []any{"competency", "score", "justification"},
			"additionalProperties": false,
		},
	}
}

const validRating = `{"competency":"Risk Tolerance","score":3,"justification":"Weighs options before acting."}`

func ratingResponse() MockResponse {
	return MockResponse{Content: json.RawMessage(validRating)}
}
