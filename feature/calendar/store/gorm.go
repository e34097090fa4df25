package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gig-calendar/feature/calendar/models"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the schema and seeds the reserved catch-all
// artist so rerouted candidates always resolve. Safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Venue{}, &models.Artist{}, &models.Event{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	various := models.Artist{Name: models.VariousArtistName, Approved: true}
	if err := db.Where("name = ?", models.VariousArtistName).FirstOrCreate(&various).Error; err != nil {
		return fmt.Errorf("seed %s artist: %w", models.VariousArtistName, err)
	}

	return nil
}

// VerifyEventIndexes reports whether the duplicate-guard index made it into
// the schema. Without it, duplicate detection degrades to racy reads.
func VerifyEventIndexes(db *gorm.DB) error {
	if !db.Migrator().HasIndex(&models.Event{}, "idx_events_venue_start") {
		return errors.New("events table is missing idx_events_venue_start")
	}
	return nil
}

// ListCrawlableVenues returns the venues eligible for reconciliation runs.
func (s *GormStore) ListCrawlableVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).Where("crawlable = ?", true).Order("id").Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("list crawlable venues: %w", err)
	}
	return venues, nil
}

// ListVenues returns every venue ordered by name.
func (s *GormStore) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).Order("name").Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// GetVenue looks a venue up by id.
func (s *GormStore) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).First(&venue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &venue, nil
}

// GetVenueBySlug looks a venue up by slug.
func (s *GormStore) GetVenueBySlug(ctx context.Context, slug string) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get venue by slug %q: %w", slug, err)
	}
	return &venue, nil
}

// CreateVenue inserts a venue.
func (s *GormStore) CreateVenue(ctx context.Context, venue *models.Venue) error {
	err := s.db.WithContext(ctx).Create(venue).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{Entity: "venue", Key: venue.Slug}
	}
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

// FindArtistByName looks an artist up by exact name.
func (s *GormStore) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	var artist models.Artist
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&artist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find artist %q: %w", name, err)
	}
	return &artist, nil
}

// CreateArtist inserts an artist.
func (s *GormStore) CreateArtist(ctx context.Context, name string) (*models.Artist, error) {
	artist := models.Artist{Name: name}
	err := s.db.WithContext(ctx).Create(&artist).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &DuplicateKeyError{Entity: "artist", Key: name}
	}
	if err != nil {
		return nil, fmt.Errorf("create artist %q: %w", name, err)
	}
	return &artist, nil
}

// FindCandidateMatches returns events at the venue starting inside
// [windowStart, windowEnd], narrowed to those whose artist or event name
// loosely matches namePrefilter. The window is resolved in SQL; the name
// filter runs here because containment must work in both directions
// ("Mike Smith Trio" has to pull in "Mike Smith") and portable SQL has no
// clean way to say that.
func (s *GormStore) FindCandidateMatches(ctx context.Context, venueID uint, windowStart, windowEnd time.Time, namePrefilter string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Artist").
		Where("venue_id = ? AND start_at BETWEEN ? AND ?", venueID, windowStart.UTC(), windowEnd.UTC()).
		Order("start_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("find candidate matches: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(namePrefilter))
	if needle == "" {
		return events, nil
	}

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if looselyContains(event.Name, needle) || looselyContains(event.ArtistName(), needle) {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

// looselyContains reports whether either lowered string contains the other.
func looselyContains(name, needle string) bool {
	if name == "" {
		return false
	}
	lowered := strings.ToLower(name)
	return strings.Contains(lowered, needle) || strings.Contains(needle, lowered)
}

// CreateEvent inserts an event. The artist association is never written
// through the event; the pipeline resolves artists itself.
func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	err := s.db.WithContext(ctx).Omit("Artist").Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{
			Entity: "event",
			Key:    fmt.Sprintf("venue %d @ %s", event.VenueID, event.StartAt.UTC().Format(time.RFC3339)),
		}
	}
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// MarkEventConflicting raises the conflict flag on an existing event.
func (s *GormStore) MarkEventConflicting(ctx context.Context, eventID uint) error {
	err := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", eventID).Update("conflict", true).Error
	if err != nil {
		return fmt.Errorf("mark event %d conflicting: %w", eventID, err)
	}
	return nil
}

// GetEventsInMonth returns the venue's events starting inside the calendar
// month containing the anchor. The window is [first of month, first of next
// month) evaluated in the anchor's location, so month edges follow the
// venue's wall clock rather than UTC.
func (s *GormStore) GetEventsInMonth(ctx context.Context, venueID uint, month time.Time) ([]models.Event, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Artist").
		Where("venue_id = ? AND start_at >= ? AND start_at < ?", venueID, start.UTC(), end.UTC()).
		Order("start_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("get events in month: %w", err)
	}
	return events, nil
}
