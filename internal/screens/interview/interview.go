// Package interview is the question-by-question screen of an assessment.
package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/compass/internal/router"
	"github.com/abhisek/compass/internal/screen"
	"github.com/abhisek/compass/internal/screens/results"
	"github.com/abhisek/compass/internal/session"
	"github.com/abhisek/compass/internal/ui/components"
	"github.com/abhisek/compass/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// InterviewScreen walks through the questions of one session and runs the
// evaluation once every answer is in.
type InterviewScreen struct {
	sess  *session.Session
	input components.TextInput

	errMsg      string
	evalErr     error
	evaluating  bool
	confirmQuit bool
	frame       int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)
var _ screen.Capturing = (*InterviewScreen)(nil)

// New creates an interview screen over sess.
func New(sess *session.Session) *InterviewScreen {
	return &InterviewScreen{
		sess:  sess,
		input: components.NewTextInput("Type your answer and press Enter...", components.DefaultAnswerLimit),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *InterviewScreen) Title() string {
	return "Assessment"
}

func (s *InterviewScreen) Status() string {
	answered, total := s.sess.Progress()
	if answered >= total {
		return fmt.Sprintf("%d/%d answered", answered, total)
	}
	return fmt.Sprintf("Q %d/%d", answered+1, total)
}

// CapturesEsc keeps Esc on this screen while a quit confirmation is needed.
func (s *InterviewScreen) CapturesEsc() bool {
	answered, _ := s.sess.Progress()
	return answered > 0 || s.confirmQuit
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.sess.State() {
	case session.StateReadyToEvaluate:
		if s.evaluating {
			return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
		}
		desc := "Analyze results"
		if s.evalErr != nil {
			desc = "Try again"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: desc},
			{Key: "Esc", Description: "Leave"},
		}
	case session.StateEvaluated:
		return []layout.KeyHint{{Key: "Enter", Description: "View results"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit answer"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationDoneMsg:
		return s.handleEvaluationDone(msg)

	case spinnerTickMsg:
		if !s.evaluating {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.sess.State() == session.StateAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if msg.String() == "esc" {
		if s.evaluating {
			return s, nil
		}
		s.confirmQuit = true
		return s, nil
	}

	switch s.sess.State() {
	case session.StateAnswering:
		if msg.String() == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.StateReadyToEvaluate:
		if msg.String() == "enter" && !s.evaluating {
			return s, s.evaluate()
		}

	case session.StateEvaluated:
		if msg.String() == "enter" {
			return s, s.showResults()
		}
	}
	return s, nil
}

func (s *InterviewScreen) submit() (screen.Screen, tea.Cmd) {
	err := s.sess.SubmitAnswer(s.input.Value())
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			s.errMsg = "Please provide a more detailed response."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.errMsg = ""
	s.input.Reset()
	return s, nil
}

// evaluate runs the evaluation off the UI loop.
func (s *InterviewScreen) evaluate() tea.Cmd {
	s.evaluating = true
	s.evalErr = nil
	sess := s.sess
	run := func() tea.Msg {
		result, err := sess.RunEvaluation(context.Background())
		return evaluationDoneMsg{Result: result, Err: err}
	}
	return tea.Batch(run, spinnerTick())
}

func (s *InterviewScreen) handleEvaluationDone(msg evaluationDoneMsg) (screen.Screen, tea.Cmd) {
	s.evaluating = false
	if msg.Err != nil {
		s.evalErr = msg.Err
		return s, nil
	}
	return s, s.showResults()
}

func (s *InterviewScreen) showResults() tea.Cmd {
	result := s.sess.Result()
	if result == nil {
		return nil
	}
	sess := s.sess
	restart := func() screen.Screen {
		sess.Reset()
		return New(sess)
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(result, restart)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
