package models

import (
	"time"
)

// VariousArtistName is the reserved catch-all artist. Candidates that carry
// an event name but no usable artist name are filed under it instead of
// being dropped.
const VariousArtistName = "Various"

// Venue is a physical location whose listings are reconciled into the
// canonical calendar.
type Venue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	URL       string    `gorm:"size:512" json:"url,omitempty"`
	Timezone  string    `gorm:"size:64" json:"timezone,omitempty"`
	Crawlable bool      `gorm:"default:true" json:"crawlable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Venue) TableName() string {
	return "venues"
}

// TimezoneOrDefault returns the venue's IANA zone, or fallback when the
// venue has none configured.
func (v Venue) TimezoneOrDefault(fallback string) string {
	if v.Timezone == "" {
		return fallback
	}
	return v.Timezone
}

// Artist is a performer. Names are unique; creation is idempotent at the
// store level.
type Artist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Approved  bool      `gorm:"default:false" json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Artist) TableName() string {
	return "artists"
}

// Event is a canonical calendar entry. StartAt and EndAt are absolute UTC
// instants; the (venue_id, start_at) pair is unique. Events are never
// deleted by the engine; Cancelled is a soft flag reserved for curation.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:512;not null" json:"name"`
	StartAt   time.Time `gorm:"uniqueIndex:idx_events_venue_start,priority:2;not null" json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	VenueID   uint      `gorm:"uniqueIndex:idx_events_venue_start,priority:1;not null" json:"venue_id"`
	ArtistID  uint      `gorm:"index" json:"artist_id"`
	Artist    *Artist   `json:"artist,omitempty"`
	Conflict  bool      `gorm:"default:false" json:"conflict"`
	Cancelled bool      `gorm:"default:false" json:"cancelled"`
	Approved  bool      `gorm:"default:false" json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Event) TableName() string {
	return "events"
}

// ArtistName returns the preloaded artist's name, or "" when the
// association was not loaded.
func (e Event) ArtistName() string {
	if e.Artist == nil {
		return ""
	}
	return e.Artist.Name
}
