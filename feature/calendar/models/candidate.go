package models

// RawCandidate is a loosely structured event record produced by the external
// extraction process. It is a wire type only and is never persisted.
type RawCandidate struct {
	// ArtistName as scraped. May be blank for multi-artist bills.
	ArtistName string `json:"artist_name"`
	// EventName as scraped, e.g. a bill or tour title. Optional.
	EventName string `json:"event_name,omitempty"`
	// StartRaw is the unparsed start date/time text.
	StartRaw string `json:"start_raw"`
	// EndRaw is the unparsed end date/time text. Optional.
	EndRaw string `json:"end_raw,omitempty"`
	// VenueID is stamped by the extractor, not the upstream scraper.
	VenueID uint `json:"venue_id,omitempty"`
	// Uncertain marks low-confidence extractions; parse failures on these
	// are logged quietly.
	Uncertain bool `json:"uncertain,omitempty"`
}

// DisplayName returns the name the candidate would be filed under: the
// artist name when present, otherwise the event name.
func (c RawCandidate) DisplayName() string {
	if c.ArtistName != "" {
		return c.ArtistName
	}
	return c.EventName
}
