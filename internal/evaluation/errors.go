package evaluation

import "fmt"

// Error reports a failed evaluation. Transport failures and rejected replies
// are both reported this way; the session stays ready for another attempt.
type Error struct {
	// Cause is a human-readable description suitable for display.
	Cause string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation failed: %s: %v", e.Cause, e.Err)
	}
	return "evaluation failed: " + e.Cause
}

func (e *Error) Unwrap() error { return e.Err }

// ConfigError reports that evaluation cannot run at all, typically because
// the provider credential is missing. No request was sent.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("evaluation is not configured: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
