package evaluation

import "github.com/abhisek/compass/internal/assessment"

// Tier buckets an overall percentage.
type Tier string

const (
	TierOutstanding       Tier = "Outstanding"
	TierGood              Tier = "Good"
	TierDevelopmentNeeded Tier = "Development Needed"
)

// Tier thresholds, in percent.
const (
	OutstandingThreshold = 80.0
	GoodThreshold        = 60.0
)

// Message returns the overall assessment line shown with the tier.
func (t Tier) Message() string {
	switch t {
	case TierOutstanding:
		return "Outstanding Performance! Shows exceptional professional competencies."
	case TierGood:
		return "Good Performance. Shows solid professional competencies with room for growth."
	default:
		return "Development Needed. Key areas require significant improvement."
	}
}

// TierFor returns the tier for a percentage.
func TierFor(percentage float64) Tier {
	switch {
	case percentage >= OutstandingThreshold:
		return TierOutstanding
	case percentage >= GoodThreshold:
		return TierGood
	default:
		return TierDevelopmentNeeded
	}
}

// Summary is the aggregate view of a result.
type Summary struct {
	Total      int     `json:"total"`
	Possible   int     `json:"possible"`
	Percentage float64 `json:"percentage"`
	Tier       Tier    `json:"tier"`
}

// Summarize totals the scores of r.
func Summarize(r *Result) Summary {
	var s Summary
	for _, c := range r.Competencies {
		s.Total += c.Score
	}
	s.Possible = assessment.MaxScore * len(r.Competencies)
	if s.Possible > 0 {
		s.Percentage = 100 * float64(s.Total) / float64(s.Possible)
	}
	s.Tier = TierFor(s.Percentage)
	return s
}
