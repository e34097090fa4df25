package resilience

import (
	"errors"
	"fmt"
)

// CircuitOpenError is returned when a call is refused because the
// operation's circuit is open. The wrapped operation was never attempted.
type CircuitOpenError struct {
	Operation string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open for operation %q", e.Operation)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

func (e *permanentError) Permanent() bool { return true }

// Permanent marks err as non-retryable. The executor fails fast on it and
// the circuit breaker does not count it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err, or anything it wraps, is marked
// non-retryable. Domain error types opt in by implementing
// Permanent() bool.
func IsPermanent(err error) bool {
	var p interface{ Permanent() bool }
	if errors.As(err, &p) {
		return p.Permanent()
	}
	return false
}
