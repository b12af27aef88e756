package interview

import (
	"time"

	"github.com/abhisek/compass/internal/evaluation"
)

// evaluationDoneMsg carries the outcome of a RunEvaluation call.
type evaluationDoneMsg struct {
	Result *evaluation.Result
	Err    error
}

// spinnerTickMsg animates the analyzing indicator.
type spinnerTickMsg time.Time
