package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store"

	"go.uber.org/zap"
)

var (
	// ErrVenueNotFound reports a venue id that matches nothing.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrBadMonth reports a month parameter that is not YYYY-MM.
	ErrBadMonth = errors.New("month must look like YYYY-MM")
)

// Service is the read side of the calendar: venue listings and per-month
// event views, served through a small TTL cache.
type Service struct {
	store  store.Store
	cache  *monthCache
	cfg    Config
	logger *zap.Logger
}

// NewService creates a calendar service. cacheTTL bounds how stale a
// month view may be; zero or negative disables caching.
func NewService(st store.Store, cfg Config, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		cache:  newMonthCache(st, cacheTTL),
		cfg:    cfg,
		logger: logger,
	}
}

// Venues lists every known venue, crawlable or not.
func (s *Service) Venues(ctx context.Context) ([]models.Venue, error) {
	return s.store.ListVenues(ctx)
}

// MonthView returns the venue's events for a month given as "YYYY-MM".
// The month window is evaluated in the venue's own timezone.
func (s *Service) MonthView(ctx context.Context, venueID uint, month string) ([]models.Event, error) {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadMonth, month)
	}

	venue, err := s.store.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}

	loc, err := time.LoadLocation(venue.TimezoneOrDefault(s.cfg.TargetTimezone))
	if err != nil {
		return nil, fmt.Errorf("load venue timezone: %w", err)
	}

	anchor := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, loc)
	return s.cache.Get(ctx, venue.ID, anchor)
}

// InvalidateVenue drops any cached month views for the venue. Writers
// call this after changing the venue's events.
func (s *Service) InvalidateVenue(venueID uint) {
	s.cache.Invalidate(venueID)
}
