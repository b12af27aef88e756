// Package assessment holds the fixed interview content: the question bank and
// the competency taxonomy the answers are scored against.
package assessment

import (
	"fmt"
	"slices"
)

// RubricScores are the anchored score levels every rubric describes, in the
// order they are presented to the evaluator.
var RubricScores = []int{1, 3, 5}

// MinScore and MaxScore bound a competency score.
const (
	MinScore = 1
	MaxScore = 5
)

// Rubric maps an anchored score level (1, 3 or 5) to its description.
type Rubric map[int]string

// Competency is one of the professional traits being scored.
type Competency struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Rubric     Rubric `json:"rubric"`

	// Evidence lists the indices of the questions whose answers are used
	// to score this competency, in prompt order.
	Evidence []int `json:"evidence"`
}

// registry indexes the seed taxonomy by name.
var registry map[string]*Competency

// byQuestion maps a question index to the competencies it evidences.
var byQuestion map[int][]string

func init() {
	registry = make(map[string]*Competency, len(seedCompetencies))
	byQuestion = make(map[int][]string)
	for i := range seedCompetencies {
		c := &seedCompetencies[i]
		registry[c.Name] = c
		for _, idx := range c.Evidence {
			byQuestion[idx] = append(byQuestion[idx], c.Name)
		}
	}
}

// Competencies returns the taxonomy in its canonical order.
// The returned slice is a copy; callers may not mutate the registry through it.
func Competencies() []Competency {
	out := make([]Competency, len(seedCompetencies))
	for i, c := range seedCompetencies {
		out[i] = c.clone()
	}
	return out
}

// CompetencyNames returns the competency names in taxonomy order.
func CompetencyNames() []string {
	names := make([]string, len(seedCompetencies))
	for i, c := range seedCompetencies {
		names[i] = c.Name
	}
	return names
}

// GetCompetency returns a competency by name, or nil if not found.
func GetCompetency(name string) *Competency {
	c, ok := registry[name]
	if !ok {
		return nil
	}
	cp := c.clone()
	return &cp
}

// CompetenciesForQuestion returns the names of the competencies evidenced by
// the question at idx.
func CompetenciesForQuestion(idx int) []string {
	return slices.Clone(byQuestion[idx])
}

// Uncovered returns the indices of questions that no competency uses as
// evidence. A well-formed taxonomy returns an empty slice.
func Uncovered(questionCount int, competencies []Competency) []int {
	covered := make(map[int]bool)
	for _, c := range competencies {
		for _, idx := range c.Evidence {
			covered[idx] = true
		}
	}
	var out []int
	for i := range questionCount {
		if !covered[i] {
			out = append(out, i)
		}
	}
	return out
}

// ValidateTaxonomy checks the structural invariants of a taxonomy against a
// question bank of the given size: unique non-empty names, a complete rubric,
// and in-range evidence indices.
func ValidateTaxonomy(questionCount int, competencies []Competency) error {
	seen := make(map[string]bool, len(competencies))
	for _, c := range competencies {
		if c.Name == "" {
			return fmt.Errorf("competency with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate competency %q", c.Name)
		}
		seen[c.Name] = true

		for _, score := range RubricScores {
			if c.Rubric[score] == "" {
				return fmt.Errorf("competency %q: missing rubric level %d", c.Name, score)
			}
		}
		if len(c.Evidence) == 0 {
			return fmt.Errorf("competency %q: no evidence questions", c.Name)
		}
		for _, idx := range c.Evidence {
			if idx < 0 || idx >= questionCount {
				return fmt.Errorf("competency %q: evidence index %d out of range [0,%d)", c.Name, idx, questionCount)
			}
		}
	}
	return nil
}

func (c Competency) clone() Competency {
	rubric := make(Rubric, len(c.Rubric))
	for k, v := range c.Rubric {
		rubric[k] = v
	}
	c.Rubric = rubric
	c.Evidence = slices.Clone(c.Evidence)
	return c
}
