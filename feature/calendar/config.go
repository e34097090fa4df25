package calendar

import (
	"time"
)

// Config holds settings for the reconciliation pipeline.
type Config struct {
	// TargetTimezone is the IANA zone candidates are interpreted in when
	// the venue has no zone of its own.
	TargetTimezone string `mapstructure:"target_timezone" default:"America/Chicago"`
	// SimilarityThreshold is the exclusive fuzzy-match cutoff for
	// duplicate/conflict classification.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" default:"0.8"`
	// MatchWindowHours bounds how far apart (either direction) two start
	// times may sit and still be compared.
	MatchWindowHours int `mapstructure:"match_window_hours" default:"4"`
	// DefaultEventDurationHours fills in the end time when none was scraped.
	DefaultEventDurationHours int `mapstructure:"default_event_duration_hours" default:"2"`
	// StalenessDays rejects candidates whose start lies further than this in
	// the past.
	StalenessDays int `mapstructure:"staleness_days" default:"3"`
	// DefaultEventHour is the local hour assumed for date-only listings.
	DefaultEventHour int `mapstructure:"default_event_hour" default:"19"`
	// VenuePauseSeconds is the pause between venues, respecting upstream
	// rate limits.
	VenuePauseSeconds int `mapstructure:"venue_pause_seconds" default:"5"`
	// CandidatePrefix is the object storage prefix the extraction process
	// drops candidate batches under.
	CandidatePrefix string `mapstructure:"candidate_prefix" default:"candidates"`
	// ReportPrefix is the object storage prefix run reports are archived
	// under.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
}

// MatchWindow returns the window half-width as a duration.
func (c Config) MatchWindow() time.Duration {
	return time.Duration(c.MatchWindowHours) * time.Hour
}

// DefaultEventDuration returns the fallback event duration.
func (c Config) DefaultEventDuration() time.Duration {
	return time.Duration(c.DefaultEventDurationHours) * time.Hour
}

// VenuePause returns the inter-venue pause as a duration.
func (c Config) VenuePause() time.Duration {
	return time.Duration(c.VenuePauseSeconds) * time.Second
}
