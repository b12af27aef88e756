package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // llm events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// CompetencyScore is one persisted competency rating.
type CompetencyScore struct {
	Competency string `json:"competency"`
	Score      int    `json:"score"`
}

// AssessmentEventData summarizes a completed evaluation. Answers and
// justifications are not stored.
type AssessmentEventData struct {
	SessionID  string
	Model      string
	Total      int
	Possible   int
	Percentage float64
	Tier       string
	Scores     []CompetencyScore
}

// AssessmentEvent is a stored assessment summary.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// AppendAssessment records a completed assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments returns assessments, newest first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)
}
