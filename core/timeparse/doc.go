// Package timeparse normalizes the date strings found on venue websites.
//
// Scraped listings carry dates in whatever shape the site's CMS emits:
// ISO timestamps, US slash dates, month names with ordinals, 12-hour
// clocks with lowercase meridiems. The Normalizer walks an ordered list
// of explicit layouts and converts the first match into a UTC instant,
// interpreting wall-clock values in the venue's IANA timezone so that
// daylight saving transitions resolve to the correct offset.
//
// Date-only values (no time component) are anchored at a configurable
// default hour, since most listings omit the start time for evening shows.
package timeparse
