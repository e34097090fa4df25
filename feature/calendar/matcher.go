package calendar

import (
	"time"

	"gig-calendar/core/fuzzy"
	"gig-calendar/feature/calendar/models"
)

// Classification labels the relationship between a candidate and the
// events already on the calendar.
type Classification int

const (
	ClassificationNew Classification = iota
	ClassificationDuplicate
	ClassificationConflict
)

func (c Classification) String() string {
	switch c {
	case ClassificationDuplicate:
		return "duplicate"
	case ClassificationConflict:
		return "conflict"
	default:
		return "new"
	}
}

// NormalizedCandidate is a candidate whose times have been resolved to
// absolute instants and whose names have been settled.
type NormalizedCandidate struct {
	Raw models.RawCandidate
	// Name is fuzzy-compared against the calendar.
	Name string
	// StartAt and EndAt are UTC instants.
	StartAt time.Time
	EndAt   time.Time
}

// MatchResult is the matcher's verdict for one candidate.
type MatchResult struct {
	Classification Classification
	// Matched is the existing event behind a duplicate or conflict verdict.
	Matched *models.Event
	// Score is the similarity against Matched, zero for new.
	Score float64
}

// DefaultSimilarityThreshold is the exclusive score cutoff when none is
// configured.
const DefaultSimilarityThreshold = 0.8

// Matcher classifies candidates against existing events by fuzzy name
// similarity and start instant.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher. The threshold is exclusive: a score equal
// to it does not match. Out-of-range values fall back to the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &Matcher{threshold: threshold}
}

// Classify scores the candidate against each window event and labels it.
// The best same-instant match and the best different-instant match are
// found independently; a duplicate wins when both exist.
func (m *Matcher) Classify(candidate NormalizedCandidate, window []models.Event) MatchResult {
	var (
		bestDup      *models.Event
		bestDupScore float64
		bestCon      *models.Event
		bestConScore float64
	)

	for i := range window {
		event := &window[i]
		score := m.score(candidate, event)
		if score <= m.threshold {
			continue
		}

		if event.StartAt.Equal(candidate.StartAt) {
			if score > bestDupScore {
				bestDup, bestDupScore = event, score
			}
		} else if score > bestConScore {
			bestCon, bestConScore = event, score
		}
	}

	if bestDup != nil {
		return MatchResult{Classification: ClassificationDuplicate, Matched: bestDup, Score: bestDupScore}
	}
	if bestCon != nil {
		return MatchResult{Classification: ClassificationConflict, Matched: bestCon, Score: bestConScore}
	}
	return MatchResult{Classification: ClassificationNew}
}

// score is the better of the similarities against the event's artist name
// and the event's own name.
func (m *Matcher) score(candidate NormalizedCandidate, event *models.Event) float64 {
	score := fuzzy.Similarity(candidate.Name, event.Name)
	if artist := event.ArtistName(); artist != "" {
		if s := fuzzy.Similarity(candidate.Name, artist); s > score {
			score = s
		}
	}
	return score
}
