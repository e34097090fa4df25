package mocks

import (
	"context"
	"time"

	"gig-calendar/feature/calendar/models"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of store.Store
type Store struct {
	mock.Mock
}

func (m *Store) ListCrawlableVenues(ctx context.Context) ([]models.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Venue), args.Error(1)
}

func (m *Store) ListVenues(ctx context.Context) ([]models.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Venue), args.Error(1)
}

func (m *Store) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *Store) GetVenueBySlug(ctx context.Context, slug string) (*models.Venue, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *Store) CreateVenue(ctx context.Context, venue *models.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *Store) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *Store) CreateArtist(ctx context.Context, name string) (*models.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *Store) FindCandidateMatches(ctx context.Context, venueID uint, windowStart, windowEnd time.Time, namePrefilter string) ([]models.Event, error) {
	args := m.Called(ctx, venueID, windowStart, windowEnd, namePrefilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *Store) MarkEventConflicting(ctx context.Context, eventID uint) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *Store) GetEventsInMonth(ctx context.Context, venueID uint, month time.Time) ([]models.Event, error) {
	args := m.Called(ctx, venueID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}
