package store

import (
	"context"
	"time"

	"gig-calendar/feature/calendar/models"
)

// Store abstracts the persistent backend the engine reconciles against.
// Absent records are reported as nil, nil rather than an error.
type Store interface {
	// ListCrawlableVenues returns the venues eligible for reconciliation runs.
	ListCrawlableVenues(ctx context.Context) ([]models.Venue, error)
	// ListVenues returns every venue.
	ListVenues(ctx context.Context) ([]models.Venue, error)
	// GetVenue looks a venue up by id.
	GetVenue(ctx context.Context, id uint) (*models.Venue, error)
	// GetVenueBySlug looks a venue up by slug.
	GetVenueBySlug(ctx context.Context, slug string) (*models.Venue, error)
	// CreateVenue inserts a venue. Returns *DuplicateKeyError on a slug
	// collision.
	CreateVenue(ctx context.Context, venue *models.Venue) error

	// FindArtistByName looks an artist up by exact name.
	FindArtistByName(ctx context.Context, name string) (*models.Artist, error)
	// CreateArtist inserts an artist. Returns *DuplicateKeyError on a name
	// collision.
	CreateArtist(ctx context.Context, name string) (*models.Artist, error)

	// FindCandidateMatches returns events at the venue starting within
	// [windowStart, windowEnd] (inclusive) whose artist or event name
	// loosely matches namePrefilter. Artist associations are preloaded.
	FindCandidateMatches(ctx context.Context, venueID uint, windowStart, windowEnd time.Time, namePrefilter string) ([]models.Event, error)
	// CreateEvent inserts an event. Returns *DuplicateKeyError when the
	// venue already has an event at that exact start instant.
	CreateEvent(ctx context.Context, event *models.Event) error
	// MarkEventConflicting raises the conflict flag. Idempotent.
	MarkEventConflicting(ctx context.Context, eventID uint) error
	// GetEventsInMonth returns the venue's events starting inside the
	// calendar month that contains the anchor, evaluated in the anchor's
	// location.
	GetEventsInMonth(ctx context.Context, venueID uint, month time.Time) ([]models.Event, error)
}
