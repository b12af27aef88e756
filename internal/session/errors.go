package session

import "fmt"

// MinAnswerLength is the minimum answer length in characters after trimming.
const MinAnswerLength = 10

// ValidationError reports an answer that was rejected. The session is
// unchanged and the answer may be resubmitted.
type ValidationError struct {
	Length int
}

func (e *ValidationError) Error() string {
	if e.Length == 0 {
		return "please provide an answer"
	}
	return fmt.Sprintf("please provide a more detailed response (at least %d characters, got %d)", MinAnswerLength, e.Length)
}

// StateError reports an operation that is not valid in the current state.
type StateError struct {
	Op    string
	State State

	// Busy is set when the operation was refused because an evaluation is
	// already in flight.
	Busy bool
}

func (e *StateError) Error() string {
	if e.Busy {
		return fmt.Sprintf("cannot %s: evaluation already in progress", e.Op)
	}
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}
