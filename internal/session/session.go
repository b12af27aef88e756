package session

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/evaluation"
	"github.com/abhisek/compass/internal/logger"
	"github.com/abhisek/compass/internal/store"
)

// Evaluator scores a built prompt. *evaluation.Client implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt string) (*evaluation.Result, error)
}

// Session is one interview. It is safe for concurrent use; every session
// owns its state and shares nothing mutable with other sessions.
type Session struct {
	id           string
	questions    []assessment.Question
	competencies []assessment.Competency
	evaluator    Evaluator
	events       store.EventRepo
	logger       *zap.Logger

	mu         sync.Mutex
	answers    []assessment.Answer
	result     *evaluation.Result
	evaluating bool
	generation int // bumped by Reset to drop in-flight evaluations
	updatedAt  time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithID sets the session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithEventRepo records completed assessments in repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Session) { s.events = repo }
}

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithContent replaces the built-in question bank and taxonomy.
func WithContent(questions []assessment.Question, competencies []assessment.Competency) Option {
	return func(s *Session) {
		s.questions = questions
		s.competencies = competencies
	}
}

// New creates a session in its initial state.
func New(evaluator Evaluator, opts ...Option) *Session {
	s := &Session{
		questions:    assessment.Questions(),
		competencies: assessment.Competencies(),
		evaluator:    evaluator,
		logger:       zap.NewNop(),
		updatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.WithFields(s.logger, zap.String("session", s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.result != nil:
		return StateEvaluated
	case len(s.answers) == len(s.questions):
		return StateReadyToEvaluate
	default:
		return StateAnswering
	}
}

// CurrentQuestion returns the next question to answer, or false once all
// questions have been answered.
func (s *Session) CurrentQuestion() (assessment.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (assessment.Question, bool) {
	if len(s.answers) >= len(s.questions) {
		return assessment.Question{}, false
	}
	return s.questions[len(s.answers)], true
}

// Progress returns the number of answered questions and the total.
func (s *Session) Progress() (answered, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers), len(s.questions)
}

// Answers returns a copy of the submitted answers in question order.
func (s *Session) Answers() []assessment.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assessment.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Result returns a copy of the stored result, or nil before evaluation.
func (s *Session) Result() *evaluation.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result.Clone()
}

// Evaluating reports whether an evaluation call is in flight.
func (s *Session) Evaluating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluating
}

// UpdatedAt returns the time of the last state change.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SubmitAnswer records text as the answer to the current question.
// Leading and trailing whitespace is dropped. A short answer fails with
// *ValidationError and a call outside StateAnswering with *StateError; in
// both cases nothing changes.
func (s *Session) SubmitAnswer(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.stateLocked(); st != StateAnswering {
		return &StateError{Op: "submit answer", State: st}
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < MinAnswerLength {
		return &ValidationError{Length: n}
	}

	s.answers = append(s.answers, assessment.Answer{
		QuestionIndex: len(s.answers),
		Text:          text,
	})
	s.updatedAt = time.Now()
	return nil
}

// RunEvaluation builds the prompt from the answers and blocks on the
// evaluator. On success the result is stored and the session moves to
// StateEvaluated. On failure the session stays in StateReadyToEvaluate
// and the call may be repeated.
func (s *Session) RunEvaluation(ctx context.Context) (*evaluation.Result, error) {
	s.mu.Lock()
	if s.evaluating {
		st := s.stateLocked()
		s.mu.Unlock()
		return nil, &StateError{Op: "run evaluation", State: st, Busy: true}
	}
	if st := s.stateLocked(); st != StateReadyToEvaluate {
		s.mu.Unlock()
		return nil, &StateError{Op: "run evaluation", State: st}
	}
	prompt := evaluation.BuildPrompt(s.questions, s.competencies, s.answers)
	gen := s.generation
	s.evaluating = true
	s.mu.Unlock()

	start := time.Now()
	result, err := s.evaluator.Evaluate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluating = false

	if gen != s.generation {
		return nil, &StateError{Op: "store evaluation", State: s.stateLocked()}
	}
	if err == nil {
		err = s.checkResult(result)
	}
	if err != nil {
		s.logger.Warn("evaluation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, err
	}

	s.result = result.Clone()
	s.updatedAt = time.Now()

	summary := evaluation.Summarize(s.result)
	s.logger.Info("evaluation complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total", summary.Total),
		zap.Int("possible", summary.Possible),
		zap.String("tier", string(summary.Tier)),
	)
	s.recordAssessment(ctx, summary)

	return s.result.Clone(), nil
}

// Reset returns the session to its initial state, discarding answers and
// any result. An evaluation in flight is abandoned.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = nil
	s.result = nil
	s.evaluating = false
	s.generation++
	s.updatedAt = time.Now()
}

// Snapshot is a consistent read of a session.
type Snapshot struct {
	ID         string               `json:"id"`
	State      State                `json:"state"`
	Answered   int                  `json:"answered"`
	Total      int                  `json:"total"`
	Evaluating bool                 `json:"evaluating"`
	Current    *assessment.Question `json:"current_question,omitempty"`
	Result     *evaluation.Result   `json:"result,omitempty"`
	Summary    *evaluation.Summary  `json:"summary,omitempty"`
}

// Snapshot returns the session state as of now.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		State:      s.stateLocked(),
		Answered:   len(s.answers),
		Total:      len(s.questions),
		Evaluating: s.evaluating,
	}
	if q, ok := s.currentLocked(); ok {
		snap.Current = &q
	}
	if s.result != nil {
		snap.Result = s.result.Clone()
		summary := evaluation.Summarize(s.result)
		snap.Summary = &summary
	}
	return snap
}

// checkResult validates result against this session's taxonomy.
func (s *Session) checkResult(result *evaluation.Result) error {
	if result == nil {
		return &evaluation.Error{Cause: "the evaluator returned no result"}
	}
	names := make([]string, len(s.competencies))
	for i, c := range s.competencies {
		names[i] = c.Name
	}
	if err := result.Validate(names); err != nil {
		return &evaluation.Error{Cause: "the evaluator reply did not match the competency taxonomy", Err: err}
	}
	return nil
}

type modelIdentifier interface {
	ModelID() string
}

// recordAssessment appends the completed assessment to the event log.
// Failures are logged and never surface to the caller.
func (s *Session) recordAssessment(ctx context.Context, summary evaluation.Summary) {
	if s.events == nil {
		return
	}

	data := store.AssessmentEventData{
		SessionID:  s.id,
		Total:      summary.Total,
		Possible:   summary.Possible,
		Percentage: summary.Percentage,
		Tier:       string(summary.Tier),
	}
	if m, ok := s.evaluator.(modelIdentifier); ok {
		data.Model = m.ModelID()
	}
	for _, c := range s.result.Competencies {
		data.Scores = append(data.Scores, store.CompetencyScore{Competency: c.Competency, Score: c.Score})
	}

	if err := s.events.AppendAssessment(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Warn("record assessment", zap.Error(err))
	}
}
