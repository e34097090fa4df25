package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gig-calendar/core/logger"
	"gig-calendar/core/metrics"
	"gig-calendar/core/resilience"
	"gig-calendar/core/timeparse"
	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline reconciles one venue's candidates against the canonical
// calendar. Candidates are processed strictly in the order supplied, and a
// failing candidate never takes the rest of the batch down with it. The
// only venue-level failure is an open circuit.
type Pipeline struct {
	store      store.Store
	matcher    *Matcher
	normalizer *timeparse.Normalizer
	exec       *resilience.Executor
	cfg        Config
	logger     *zap.Logger

	now func() time.Time
}

// NewPipeline wires a pipeline. A nil logger falls back to a nop logger.
func NewPipeline(st store.Store, exec *resilience.Executor, cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		store:      st,
		matcher:    NewMatcher(cfg.SimilarityThreshold),
		normalizer: timeparse.New(cfg.DefaultEventHour),
		exec:       exec,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Run reconciles the candidates for one venue and returns the run report.
// An empty batch is a normal, successful run. When the circuit opens the
// report covers what was processed so far and the error names the refused
// operation; the caller moves on to its next venue.
func (p *Pipeline) Run(ctx context.Context, venue models.Venue, candidates []models.RawCandidate) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:      uuid.NewString(),
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		VenueSlug:  venue.Slug,
		StartedAt:  p.now().UTC(),
		Candidates: len(candidates),
		Created:    []models.Event{},
	}
	log := logger.WithRun(p.logger, report.RunID, venue.Slug)

	loc, err := time.LoadLocation(venue.TimezoneOrDefault(p.cfg.TargetTimezone))
	if err != nil {
		return nil, fmt.Errorf("load timezone for venue %s: %w", venue.Slug, err)
	}

	for _, raw := range candidates {
		if err := p.reconcile(ctx, log, loc, venue, raw, report); err != nil {
			var open *resilience.CircuitOpenError
			if errors.As(err, &open) {
				metrics.CircuitOpenTotal.WithLabelValues(open.Operation).Inc()
			}
			report.FinishedAt = p.now().UTC()
			log.Error("Venue run aborted", zap.Error(err))
			return report, err
		}
	}

	report.FinishedAt = p.now().UTC()
	log.Info("Venue reconciled",
		zap.Int("candidates", report.Candidates),
		zap.Int("created", len(report.Created)),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("conflicts", report.Conflicts),
		zap.Int("skipped", len(report.Skipped)))

	return report, nil
}

// candidateNames are the three names a candidate resolves to. They differ
// for multi-artist bills: a candidate with only an event name matches and
// titles under that name but files under the catch-all artist.
type candidateNames struct {
	// Match is fuzzy-compared against the calendar.
	Match string
	// Artist is the artist record the event files under.
	Artist string
	// Title becomes the event's display name.
	Title string
}

// resolveNames validates the candidate's raw shape.
func resolveNames(raw models.RawCandidate) (candidateNames, *ValidationError) {
	artist := strings.TrimSpace(raw.ArtistName)
	title := strings.TrimSpace(raw.EventName)

	if strings.TrimSpace(raw.StartRaw) == "" {
		return candidateNames{}, &ValidationError{Reason: "missing start time"}
	}

	switch {
	case artist != "":
		if title == "" {
			title = artist
		}
		return candidateNames{Match: artist, Artist: artist, Title: title}, nil
	case title != "":
		// A bill with no headline act still goes on the calendar.
		return candidateNames{Match: title, Artist: models.VariousArtistName, Title: title}, nil
	default:
		return candidateNames{}, &ValidationError{Reason: "no artist or event name"}
	}
}

// reconcile runs one candidate through the full step sequence. A non-nil
// return means the venue must abort; contained failures are recorded on the
// report and return nil.
func (p *Pipeline) reconcile(ctx context.Context, log *zap.Logger, loc *time.Location, venue models.Venue, raw models.RawCandidate, report *models.RunReport) error {
	names, verr := resolveNames(raw)
	if verr != nil {
		log.Warn("Dropping invalid candidate",
			zap.String("artist", raw.ArtistName),
			zap.String("event", raw.EventName),
			zap.String("reason", verr.Reason))
		p.skip(report, raw, models.SkipInvalid, verr.Reason, metrics.OutcomeInvalid)
		return nil
	}

	startAt, err := p.normalizer.NormalizeIn(raw.StartRaw, loc)
	if err != nil {
		// Uncertain extractions fail quietly; they were a gamble to begin
		// with.
		if raw.Uncertain {
			log.Debug("Unparseable start time", zap.String("raw", raw.StartRaw), zap.Error(err))
		} else {
			log.Warn("Unparseable start time", zap.String("raw", raw.StartRaw), zap.Error(err))
		}
		p.skip(report, raw, models.SkipUnparsed, raw.StartRaw, metrics.OutcomeUnparsed)
		return nil
	}

	endAt := startAt.Add(p.cfg.DefaultEventDuration())
	if raw.EndRaw != "" {
		parsed, err := p.normalizer.NormalizeIn(raw.EndRaw, loc)
		switch {
		case err != nil:
			log.Debug("Unparseable end time, defaulting duration", zap.String("raw", raw.EndRaw))
		case !parsed.After(startAt):
			log.Debug("End time not after start, defaulting duration",
				zap.Time("start_at", startAt), zap.Time("end_at", parsed))
		default:
			endAt = parsed
		}
	}

	candidate := NormalizedCandidate{Raw: raw, Name: names.Match, StartAt: startAt, EndAt: endAt}

	window, err := resilience.Execute(ctx, p.exec, "store.find_candidate_matches", func(ctx context.Context) ([]models.Event, error) {
		return p.store.FindCandidateMatches(ctx, venue.ID, startAt.Add(-p.cfg.MatchWindow()), startAt.Add(p.cfg.MatchWindow()), names.Match)
	})
	if err != nil {
		return p.candidateFailed(log, report, raw, err)
	}

	result := p.matcher.Classify(candidate, window)

	if result.Classification == ClassificationDuplicate {
		log.Debug("Duplicate listing",
			zap.Uint("event_id", result.Matched.ID),
			zap.Float64("score", result.Score))
		report.Duplicates++
		metrics.CandidatesTotal.WithLabelValues(report.VenueSlug, metrics.OutcomeDuplicate).Inc()
		return nil
	}

	conflict := result.Classification == ClassificationConflict
	if conflict {
		// Conflicts are surfaced, never merged: flag the existing event and
		// create the new one flagged as well.
		err := p.exec.Do(ctx, "store.mark_event_conflicting", func(ctx context.Context) error {
			return p.store.MarkEventConflicting(ctx, result.Matched.ID)
		})
		if err != nil {
			return p.candidateFailed(log, report, raw, err)
		}
		report.Conflicts++
		log.Info("Conflicting listing",
			zap.Uint("existing_event_id", result.Matched.ID),
			zap.Float64("score", result.Score),
			zap.Time("existing_start", result.Matched.StartAt),
			zap.Time("candidate_start", startAt))
	}

	artist, err := p.resolveArtist(ctx, names.Artist)
	if err != nil {
		return p.candidateFailed(log, report, raw, err)
	}

	cutoff := p.now().AddDate(0, 0, -p.cfg.StalenessDays)
	if startAt.Before(cutoff) {
		log.Info("Stale candidate",
			zap.String("name", names.Title),
			zap.Time("start_at", startAt),
			zap.Time("cutoff", cutoff))
		p.skip(report, raw, models.SkipStale, startAt.Format(time.RFC3339), metrics.OutcomeStale)
		return nil
	}

	event := &models.Event{
		Name:     names.Title,
		StartAt:  startAt,
		EndAt:    endAt,
		VenueID:  venue.ID,
		ArtistID: artist.ID,
		Conflict: conflict,
	}
	err = p.exec.Do(ctx, "store.create_event", func(ctx context.Context) error {
		return p.store.CreateEvent(ctx, event)
	})
	if err != nil {
		// Losing the race to an identical listing is not a failure.
		var dup *store.DuplicateKeyError
		if errors.As(err, &dup) {
			log.Debug("Duplicate at persist time", zap.Error(err))
			report.Duplicates++
			metrics.CandidatesTotal.WithLabelValues(report.VenueSlug, metrics.OutcomeDuplicate).Inc()
			return nil
		}
		return p.candidateFailed(log, report, raw, err)
	}

	report.Created = append(report.Created, *event)
	outcome := metrics.OutcomeCreated
	if conflict {
		outcome = metrics.OutcomeConflict
	}
	metrics.CandidatesTotal.WithLabelValues(report.VenueSlug, outcome).Inc()
	log.Info("Event created",
		zap.Uint("event_id", event.ID),
		zap.String("name", event.Name),
		zap.Time("start_at", event.StartAt),
		zap.Bool("conflict", event.Conflict))

	return nil
}

// resolveArtist finds or creates the artist record. Losing a create race is
// fine: the duplicate just means the lookup now succeeds.
func (p *Pipeline) resolveArtist(ctx context.Context, name string) (*models.Artist, error) {
	artist, err := resilience.Execute(ctx, p.exec, "store.find_artist", func(ctx context.Context) (*models.Artist, error) {
		return p.store.FindArtistByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if artist != nil {
		return artist, nil
	}

	created, err := resilience.Execute(ctx, p.exec, "store.create_artist", func(ctx context.Context) (*models.Artist, error) {
		return p.store.CreateArtist(ctx, name)
	})
	if err == nil {
		return created, nil
	}

	var dup *store.DuplicateKeyError
	if !errors.As(err, &dup) {
		return nil, err
	}

	artist, err = resilience.Execute(ctx, p.exec, "store.find_artist", func(ctx context.Context) (*models.Artist, error) {
		return p.store.FindArtistByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, fmt.Errorf("artist %q vanished after duplicate create", name)
	}
	return artist, nil
}

// candidateFailed contains a per-candidate failure. An open circuit is the
// one error that propagates.
func (p *Pipeline) candidateFailed(log *zap.Logger, report *models.RunReport, raw models.RawCandidate, err error) error {
	var open *resilience.CircuitOpenError
	if errors.As(err, &open) {
		return err
	}

	log.Warn("Candidate failed",
		zap.String("artist", raw.ArtistName),
		zap.String("event", raw.EventName),
		zap.Error(err))
	p.skip(report, raw, models.SkipError, err.Error(), metrics.OutcomeError)
	return nil
}

func (p *Pipeline) skip(report *models.RunReport, raw models.RawCandidate, reason, detail, outcome string) {
	report.Skipped = append(report.Skipped, models.SkipRecord{
		Artist: raw.ArtistName,
		Event:  raw.EventName,
		Reason: reason,
		Detail: detail,
	})
	metrics.CandidatesTotal.WithLabelValues(report.VenueSlug, outcome).Inc()
}
