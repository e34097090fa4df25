package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"gig-calendar/core/resilience"
	storagemocks "gig-calendar/core/storage/mocks"
	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testBottle = models.Venue{ID: 2, Name: "Empty Bottle", Slug: "empty-bottle", URL: "https://emptybottle.com", Timezone: "America/Chicago", Crawlable: true}

type fakeExtractor struct {
	batches  map[string][]models.RawCandidate
	errs     map[string]error
	pending  []string
	consumed []string
}

func (f *fakeExtractor) Extract(_ context.Context, venue models.Venue, _ []models.Event) ([]models.RawCandidate, error) {
	if err := f.errs[venue.Slug]; err != nil {
		return nil, err
	}
	return f.batches[venue.Slug], nil
}

func (f *fakeExtractor) Consume(_ context.Context, venue models.Venue) error {
	f.consumed = append(f.consumed, venue.Slug)
	return nil
}

func (f *fakeExtractor) PendingSlugs(context.Context) ([]string, error) {
	return f.pending, nil
}

func newTestReconciler(st *mocks.Store, ex *fakeExtractor, deps ReconcilerDeps) (*Reconciler, *[]time.Duration) {
	deps.Store = st
	deps.Extractor = ex
	if deps.Executor == nil {
		deps.Executor = testExecutor(resilience.Config{})
	}
	if deps.Config.TargetTimezone == "" {
		deps.Config = testConfig()
	}
	r := NewReconciler(deps)

	sleeps := &[]time.Duration{}
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return ctx.Err()
	}
	r.now = func() time.Time { return fixedNow }
	r.pipeline.now = r.now
	return r, sleeps
}

func freshCandidate() models.RawCandidate {
	return models.RawCandidate{ArtistName: "Radiohead", StartRaw: "2026-04-20 20:00"}
}

func expectCreateRun(st *mocks.Store, venueID uint) {
	st.On("GetEventsInMonth", mock.Anything, venueID, mock.Anything).Return([]models.Event{}, nil)
	st.On("FindCandidateMatches", mock.Anything, venueID, mock.Anything, mock.Anything, "Radiohead").Return([]models.Event{}, nil)
	st.On("FindArtistByName", mock.Anything, "Radiohead").Return(&models.Artist{ID: 7, Name: "Radiohead"}, nil)
	st.On("CreateEvent", mock.Anything, mock.Anything).Return(nil)
}

func TestReconcileAllRunsVenuesInSequence(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue, testBottle}, nil)
	expectCreateRun(st, testVenue.ID)
	expectCreateRun(st, testBottle.ID)

	ex := &fakeExtractor{batches: map[string][]models.RawCandidate{
		"thalia-hall":  {freshCandidate()},
		"empty-bottle": {freshCandidate()},
	}}

	r, sleeps := newTestReconciler(st, ex, ReconcilerDeps{})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Venues)
	assert.Equal(t, 2, summary.Created)
	assert.Zero(t, summary.Failed)

	// One pause between two venues, none before the first.
	assert.Equal(t, []time.Duration{5 * time.Second}, *sleeps)
	assert.Equal(t, []string{"thalia-hall", "empty-bottle"}, ex.consumed)
}

func TestReconcileAllIsolatesVenueFailures(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue, testBottle}, nil)
	st.On("GetEventsInMonth", mock.Anything, testVenue.ID, mock.Anything).Return([]models.Event{}, nil)
	expectCreateRun(st, testBottle.ID)

	ex := &fakeExtractor{
		batches: map[string][]models.RawCandidate{"empty-bottle": {freshCandidate()}},
		errs:    map[string]error{"thalia-hall": errors.New("storage down")},
	}

	r, _ := newTestReconciler(st, ex, ReconcilerDeps{})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Venues)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, []string{"empty-bottle"}, ex.consumed)
}

func TestReconcileAllEmptyBatchIsQuiet(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue}, nil)
	st.On("GetEventsInMonth", mock.Anything, testVenue.ID, mock.Anything).Return([]models.Event{}, nil)

	ex := &fakeExtractor{}

	r, _ := newTestReconciler(st, ex, ReconcilerDeps{})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Venues)
	assert.Zero(t, summary.Created)
	assert.Empty(t, ex.consumed)
	st.AssertNotCalled(t, "FindCandidateMatches")
}

func TestReconcileAllSingleVenue(t *testing.T) {
	t.Run("RunsOnlyThatVenue", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenueBySlug", mock.Anything, "empty-bottle").Return(&testBottle, nil)
		expectCreateRun(st, testBottle.ID)

		ex := &fakeExtractor{batches: map[string][]models.RawCandidate{"empty-bottle": {freshCandidate()}}}

		r, _ := newTestReconciler(st, ex, ReconcilerDeps{})
		summary, err := r.ReconcileAll(context.Background(), RunOptions{VenueSlug: "empty-bottle"})

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Venues)
		st.AssertNotCalled(t, "ListCrawlableVenues")
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		st := new(mocks.Store)
		st.On("GetVenueBySlug", mock.Anything, "no-such-place").Return(nil, nil)

		r, _ := newTestReconciler(st, &fakeExtractor{}, ReconcilerDeps{})
		_, err := r.ReconcileAll(context.Background(), RunOptions{VenueSlug: "no-such-place"})

		assert.ErrorContains(t, err, "no-such-place")
	})
}

func TestReconcileAllPendingOnly(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue, testBottle}, nil)
	expectCreateRun(st, testBottle.ID)

	ex := &fakeExtractor{
		batches: map[string][]models.RawCandidate{"empty-bottle": {freshCandidate()}},
		pending: []string{"empty-bottle"},
	}

	r, _ := newTestReconciler(st, ex, ReconcilerDeps{})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{PendingOnly: true})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Venues)
	st.AssertNotCalled(t, "GetEventsInMonth", mock.Anything, testVenue.ID, mock.Anything)
}

func TestReconcileAllCircuitAbortKeepsBatch(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue}, nil)
	st.On("GetEventsInMonth", mock.Anything, testVenue.ID, mock.Anything).Return([]models.Event{}, nil)
	st.On("FindCandidateMatches", mock.Anything, testVenue.ID, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	ex := &fakeExtractor{batches: map[string][]models.RawCandidate{
		"thalia-hall": {freshCandidate(), freshCandidate()},
	}}

	exec := testExecutor(resilience.Config{MaxRetries: 1, BaseDelayMs: 1, BreakerThreshold: 1, BreakerTimeoutMs: 60000})
	r, _ := newTestReconciler(st, ex, ReconcilerDeps{Executor: exec})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	// The loop itself succeeds; the abort is a per-venue outcome.
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, ex.consumed, "an aborted venue keeps its batch for the next run")
}

func TestReconcileAllInvalidatesChangedVenues(t *testing.T) {
	duplicate := models.Event{
		ID:      9,
		Name:    "Radiohead",
		StartAt: time.Date(2026, 4, 21, 1, 0, 0, 0, time.UTC),
		VenueID: testBottle.ID,
	}

	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue, testBottle}, nil)
	expectCreateRun(st, testVenue.ID)
	st.On("GetEventsInMonth", mock.Anything, testBottle.ID, mock.Anything).Return([]models.Event{}, nil)
	st.On("FindCandidateMatches", mock.Anything, testBottle.ID, mock.Anything, mock.Anything, "Radiohead").
		Return([]models.Event{duplicate}, nil)

	ex := &fakeExtractor{batches: map[string][]models.RawCandidate{
		"thalia-hall":  {freshCandidate()},
		"empty-bottle": {freshCandidate()},
	}}

	var invalidated []uint
	r, _ := newTestReconciler(st, ex, ReconcilerDeps{Invalidate: func(venueID uint) {
		invalidated = append(invalidated, venueID)
	}})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Duplicates)
	// Only the venue that actually changed drops its cached views.
	assert.Equal(t, []uint{testVenue.ID}, invalidated)
}

func TestReconcileAllArchiveFailureDoesNotFailRun(t *testing.T) {
	st := new(mocks.Store)
	st.On("ListCrawlableVenues", mock.Anything).Return([]models.Venue{testVenue}, nil)
	expectCreateRun(st, testVenue.ID)

	client := new(storagemocks.Client)
	client.On("PutObject", mock.Anything, "gigs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	ex := &fakeExtractor{batches: map[string][]models.RawCandidate{"thalia-hall": {freshCandidate()}}}

	exec := testExecutor(resilience.Config{})
	archiver := NewArchiver(client, "gigs", "reports", exec, nil)
	r, _ := newTestReconciler(st, ex, ReconcilerDeps{Executor: exec, Archiver: archiver})
	summary, err := r.ReconcileAll(context.Background(), RunOptions{})

	require.NoError(t, err)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, []string{"thalia-hall"}, ex.consumed)
	client.AssertExpectations(t)
}

func TestPauseStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := pause(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
