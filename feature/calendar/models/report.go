package models

import (
	"time"
)

// Skip reasons recorded in run reports.
const (
	SkipInvalid   = "invalid"
	SkipUnparsed  = "unparsed_start"
	SkipDuplicate = "duplicate"
	SkipStale     = "stale"
	SkipError     = "error"
)

// SkipRecord explains why one candidate was not persisted.
type SkipRecord struct {
	Artist string `json:"artist,omitempty"`
	Event  string `json:"event,omitempty"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// RunReport is the archived outcome of one venue reconciliation run.
type RunReport struct {
	RunID      string       `json:"run_id"`
	VenueID    uint         `json:"venue_id"`
	VenueName  string       `json:"venue_name"`
	VenueSlug  string       `json:"venue_slug"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Candidates int          `json:"candidates"`
	Created    []Event      `json:"created"`
	Duplicates int          `json:"duplicates"`
	Conflicts  int          `json:"conflicts"`
	Skipped    []SkipRecord `json:"skipped,omitempty"`
}

// CreatedCount is a convenience for summaries.
func (r RunReport) CreatedCount() int {
	return len(r.Created)
}
