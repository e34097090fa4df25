package calendar

// ValidationError reports a candidate whose raw shape cannot be reconciled.
// It is permanent: the same input will never validate on a retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid candidate: " + e.Reason
}

// Permanent marks the error non-retryable for the resilient executor.
func (e *ValidationError) Permanent() bool {
	return true
}
