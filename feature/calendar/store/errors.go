package store

import (
	"fmt"
)

// DuplicateKeyError reports a uniqueness violation on insert. The pipeline
// treats it as benign when it arrives at persist time: the record already
// exists, so there is nothing left to do.
type DuplicateKeyError struct {
	// Entity is the record kind, e.g. "event" or "artist".
	Entity string
	// Key describes the colliding natural key.
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.Key)
}

// Permanent marks the error non-retryable. Retrying the same insert can
// never succeed.
func (e *DuplicateKeyError) Permanent() bool {
	return true
}
