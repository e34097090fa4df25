package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultEventHour is the local hour assigned to date-only listings.
// Most venues that omit a start time mean an evening show.
const DefaultEventHour = 19

// ParseError reports a raw date string that matched none of the known
// layouts.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable date/time %q", e.Raw)
}

// dateTimeLayouts are tried first, in order. The first layout that parses
// wins, so more specific layouts come before looser ones. Non-padded
// numeric layouts ("1/2/2006") also accept zero-padded input, which keeps
// the list short.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"1/2/2006 3 PM",
	"January 2, 2006 3:04 PM",
	"January 2 2006 3:04 PM",
	"January 2, 2006 15:04",
	"January 2, 2006 3 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 PM",
	"Monday, January 2, 2006 3:04 PM",
	"Mon, Jan 2, 2006 3:04 PM",
	"Mon Jan 2 2006 3:04 PM",
}

// dateOnlyLayouts are tried after every date-time layout has failed.
// Matches are anchored at the default event hour.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"Mon Jan 2 2006",
}

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	ordinalRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	amRe      = regexp.MustCompile(`(?i)(\d)\s*a\.?m\.?`)
	pmRe      = regexp.MustCompile(`(?i)(\d)\s*p\.?m\.?`)
)

// clean canonicalizes a raw string before layout matching: trims and
// collapses whitespace, strips ordinal suffixes ("14th" -> "14") and
// rewrites meridiems into the single form the layouts expect
// ("7:30pm", "8 p.m." -> "7:30 PM", "8 PM").
func clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = spaceRun.ReplaceAllString(s, " ")
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = amRe.ReplaceAllString(s, "$1 AM")
	s = pmRe.ReplaceAllString(s, "$1 PM")
	return s
}

// Normalizer turns raw scraped date strings into UTC instants.
type Normalizer struct {
	defaultHour int
}

// New returns a Normalizer that anchors date-only values at defaultHour
// in the venue's local time. Out-of-range hours fall back to
// DefaultEventHour.
func New(defaultHour int) *Normalizer {
	if defaultHour < 0 || defaultHour > 23 {
		defaultHour = DefaultEventHour
	}
	return &Normalizer{defaultHour: defaultHour}
}

// Normalize parses raw in the named IANA timezone and returns the
// resulting instant in UTC. An unknown timezone is a configuration error,
// not a parse error.
func (n *Normalizer) Normalize(raw, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("load location %q: %w", tz, err)
	}
	return n.NormalizeIn(raw, loc)
}

// NormalizeIn parses raw as a wall-clock value in loc. Interpreting the
// wall clock in the location, rather than attaching a fixed offset,
// makes instants on either side of a DST transition come out right.
func (n *Normalizer) NormalizeIn(raw string, loc *time.Location) (time.Time, error) {
	s := clean(raw)
	if s == "" {
		return time.Time{}, &ParseError{Raw: raw}
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}

	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), n.defaultHour, 0, 0, 0, loc)
			return t.UTC(), nil
		}
	}

	return time.Time{}, &ParseError{Raw: raw}
}
