package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gig-calendar/core/metrics"
	"gig-calendar/core/resilience"
	"gig-calendar/feature/calendar/extract"
	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store"

	"go.uber.org/zap"
)

// RunOptions narrow a reconcile invocation.
type RunOptions struct {
	// VenueSlug restricts the run to a single venue, crawlable or not.
	VenueSlug string
	// PendingOnly restricts the run to venues with a batch waiting.
	PendingOnly bool
}

// Summary aggregates one reconcile invocation across venues.
type Summary struct {
	Venues     int
	Created    int
	Duplicates int
	Conflicts  int
	Skipped    int
	Failed     int
}

// ReconcilerDeps wires a Reconciler.
type ReconcilerDeps struct {
	Store     store.Store
	Extractor extract.Extractor
	// Archiver is optional; nil disables report archiving.
	Archiver *Archiver
	Executor *resilience.Executor
	Config   Config
	Logger   *zap.Logger
	// Invalidate is an optional hook to drop cached month views after a
	// venue's events change.
	Invalidate func(venueID uint)
}

// Reconciler drives full reconciliation runs. Venues are processed
// strictly one after another with a pause in between, so a venue's
// writes are settled before the next venue reads its month context.
type Reconciler struct {
	store      store.Store
	extractor  extract.Extractor
	pipeline   *Pipeline
	archiver   *Archiver
	exec       *resilience.Executor
	cfg        Config
	logger     *zap.Logger
	invalidate func(venueID uint)

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewReconciler creates a reconciler from its dependencies.
func NewReconciler(deps ReconcilerDeps) *Reconciler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		store:      deps.Store,
		extractor:  deps.Extractor,
		pipeline:   NewPipeline(deps.Store, deps.Executor, deps.Config, logger),
		archiver:   deps.Archiver,
		exec:       deps.Executor,
		cfg:        deps.Config,
		logger:     logger,
		invalidate: deps.Invalidate,
		now:        time.Now,
		sleep:      pause,
	}
}

// ReconcileAll reconciles every selected venue in sequence. A venue
// that fails, even with an open circuit, never stops the loop; the
// error is logged and the next venue proceeds. Cancelling the context
// stops the loop between venues.
func (r *Reconciler) ReconcileAll(ctx context.Context, opts RunOptions) (*Summary, error) {
	venues, err := r.selectVenues(ctx, opts)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Reconciliation started", zap.Int("venues", len(venues)))

	summary := &Summary{}
	for i, venue := range venues {
		if i > 0 {
			if err := r.sleep(ctx, r.cfg.VenuePause()); err != nil {
				return summary, err
			}
		}
		r.reconcileVenue(ctx, venue, summary)
		if err := ctx.Err(); err != nil {
			return summary, err
		}
	}

	r.logger.Info("Reconciliation finished",
		zap.Int("venues", summary.Venues),
		zap.Int("created", summary.Created),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("conflicts", summary.Conflicts),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

func (r *Reconciler) selectVenues(ctx context.Context, opts RunOptions) ([]models.Venue, error) {
	if opts.VenueSlug != "" {
		venue, err := resilience.Execute(ctx, r.exec, "store.get_venue", func(ctx context.Context) (*models.Venue, error) {
			return r.store.GetVenueBySlug(ctx, opts.VenueSlug)
		})
		if err != nil {
			return nil, err
		}
		if venue == nil {
			return nil, fmt.Errorf("no venue with slug %q", opts.VenueSlug)
		}
		return []models.Venue{*venue}, nil
	}

	venues, err := resilience.Execute(ctx, r.exec, "store.list_venues", func(ctx context.Context) ([]models.Venue, error) {
		return r.store.ListCrawlableVenues(ctx)
	})
	if err != nil {
		return nil, err
	}

	if !opts.PendingOnly {
		return venues, nil
	}

	lister, ok := r.extractor.(extract.PendingLister)
	if !ok {
		return nil, errors.New("extractor cannot list pending batches")
	}
	slugs, err := lister.PendingSlugs(ctx)
	if err != nil {
		return nil, err
	}

	pending := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		pending[slug] = true
	}

	selected := venues[:0]
	for _, venue := range venues {
		if pending[venue.Slug] {
			selected = append(selected, venue)
		}
	}
	return selected, nil
}

func (r *Reconciler) reconcileVenue(ctx context.Context, venue models.Venue, summary *Summary) {
	log := r.logger.With(zap.String("venue", venue.Slug))
	started := time.Now()
	status := "ok"
	defer func() {
		metrics.RunsTotal.WithLabelValues(venue.Slug, status).Inc()
		metrics.RunDuration.WithLabelValues(venue.Slug).Observe(time.Since(started).Seconds())
	}()

	summary.Venues++

	monthContext, err := r.monthContext(ctx, venue)
	if err != nil {
		log.Error("Month context failed", zap.Error(err))
		status = "error"
		summary.Failed++
		return
	}

	candidates, err := resilience.Execute(ctx, r.exec, "extract.candidates", func(ctx context.Context) ([]models.RawCandidate, error) {
		return r.extractor.Extract(ctx, venue, monthContext)
	})
	if err != nil {
		log.Error("Extraction failed", zap.Error(err))
		status = "error"
		summary.Failed++
		return
	}
	if len(candidates) == 0 {
		log.Debug("No pending candidates")
		return
	}

	report, runErr := r.pipeline.Run(ctx, venue, candidates)
	if report != nil {
		summary.Created += report.CreatedCount()
		summary.Duplicates += report.Duplicates
		summary.Conflicts += report.Conflicts
		summary.Skipped += len(report.Skipped)

		if r.invalidate != nil && (report.CreatedCount() > 0 || report.Conflicts > 0) {
			r.invalidate(venue.ID)
		}
		if r.archiver != nil {
			if err := r.archiver.Archive(ctx, report); err != nil {
				log.Warn("Report archive failed", zap.Error(err))
			}
		}
	}

	if runErr != nil {
		log.Error("Venue reconcile failed", zap.Error(runErr))
		var open *resilience.CircuitOpenError
		if errors.As(runErr, &open) {
			status = "aborted"
		} else {
			status = "error"
		}
		summary.Failed++
		return
	}

	// Only a fully processed batch is acknowledged; an aborted venue
	// keeps its batch for the next run.
	if consumer, ok := r.extractor.(extract.BatchConsumer); ok {
		if err := consumer.Consume(ctx, venue); err != nil {
			log.Warn("Candidate batch consume failed", zap.Error(err))
		}
	}
}

func (r *Reconciler) monthContext(ctx context.Context, venue models.Venue) ([]models.Event, error) {
	loc, err := time.LoadLocation(venue.TimezoneOrDefault(r.cfg.TargetTimezone))
	if err != nil {
		return nil, fmt.Errorf("load venue timezone: %w", err)
	}
	anchor := r.now().In(loc)
	return resilience.Execute(ctx, r.exec, "store.events_in_month", func(ctx context.Context) ([]models.Event, error) {
		return r.store.GetEventsInMonth(ctx, venue.ID, anchor)
	})
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
