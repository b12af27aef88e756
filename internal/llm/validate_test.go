package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse_Valid(t *testing.T) {
	if err := validateResponse(ratingSchema(), json.RawMessage(validRating)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"competency":"Risk Tolerance","score":3}`},
		{"wrong type", `{"competency":"Risk Tolerance","score":"three","justification":"x"}`},
		{"below minimum", `{"competency":"Risk Tolerance","score":0,"justification":"x"}`},
		{"above maximum", `{"competency":"Risk Tolerance","score":6,"justification":"x"}`},
		{"fractional score", `{"competency":"Risk Tolerance","score":2.5,"justification":"x"}`},
		{"invalid enum", `{"competency":"Risk Tolerance","score":3,"justification":"x","tier":"max"}`},
		{"extra property", `{"competency":"Risk Tolerance","score":3,"justification":"x","notes":"y"}`},
		{"malformed JSON", `{not json}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(ratingSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Fatalf("expected raw content to be preserved, got %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArray(t *testing.T) {
	schema := &Schema{
		Name: "test-rating-list",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ratings": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    ratingSchema().Definition,
				},
			},
			"required": []any{"ratings"},
		},
	}

	valid := json.RawMessage(`{"ratings":[` + validRating + `]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := validateResponse(schema, json.RawMessage(`{"ratings":[]}`)); err == nil {
		t.Fatal("expected error for empty ratings")
	}
}
