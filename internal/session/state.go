// Package session implements the interview state machine: answers are
// collected one question at a time, then evaluated once.
package session

import "fmt"

// State is the phase of an interview session.
type State int

const (
	StateAnswering       State = iota // Questions remain unanswered
	StateReadyToEvaluate              // All questions answered, no result yet
	StateEvaluated                    // A validated result is stored
)

func (s State) String() string {
	switch s {
	case StateAnswering:
		return "answering"
	case StateReadyToEvaluate:
		return "ready_to_evaluate"
	case StateEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateAnswering, StateReadyToEvaluate, StateEvaluated} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}
