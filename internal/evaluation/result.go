package evaluation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/compass/internal/assessment"
)

// CompetencyScore is the evaluator's rating of one competency.
type CompetencyScore struct {
	Competency    string `json:"competency"`
	Score         int    `json:"score"`
	Justification string `json:"justification"`
}

// Result is a validated evaluation: exactly one score per competency.
type Result struct {
	Competencies []CompetencyScore `json:"competencies"`
}

// ParseResult decodes an evaluator reply and validates it against the
// given competency names. Unknown fields are rejected.
func ParseResult(raw []byte, names []string) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var r Result
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode reply: trailing data after object")
	}
	if err := r.Validate(names); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks that r holds exactly one entry per name, each with a score
// in range and a justification. Order is not significant.
func (r *Result) Validate(names []string) error {
	expected := make(map[string]bool, len(names))
	for _, n := range names {
		expected[n] = true
	}

	seen := make(map[string]bool, len(r.Competencies))
	for _, c := range r.Competencies {
		if !expected[c.Competency] {
			return fmt.Errorf("unknown competency %q", c.Competency)
		}
		if seen[c.Competency] {
			return fmt.Errorf("competency %q scored more than once", c.Competency)
		}
		seen[c.Competency] = true

		if c.Score < assessment.MinScore || c.Score > assessment.MaxScore {
			return fmt.Errorf("competency %q: score %d outside %d-%d", c.Competency, c.Score, assessment.MinScore, assessment.MaxScore)
		}
		if strings.TrimSpace(c.Justification) == "" {
			return fmt.Errorf("competency %q: missing justification", c.Competency)
		}
	}

	for _, n := range names {
		if !seen[n] {
			return fmt.Errorf("missing competency %q", n)
		}
	}
	return nil
}

// Lookup returns the score for a competency.
func (r *Result) Lookup(name string) (CompetencyScore, bool) {
	for _, c := range r.Competencies {
		if c.Competency == name {
			return c, true
		}
	}
	return CompetencyScore{}, false
}

// Clone returns a deep copy of r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{Competencies: make([]CompetencyScore, len(r.Competencies))}
	copy(out.Competencies, r.Competencies)
	return out
}
