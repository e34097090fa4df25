// Package calendar turns scraped candidate events into a canonical
// per-venue gig calendar.
//
// The write side is the Reconciler. Per venue it loads the month context,
// extracts the pending candidate batch from object storage, runs the
// Pipeline and archives a run report. The pipeline normalizes each
// candidate's times into UTC, classifies it against the existing calendar
// (new, duplicate or conflict), resolves its artist and persists it. Every
// store and storage call goes through the resilience executor, so a venue
// with a failing backend is abandoned instead of hammering it.
//
// The read side is the Service: venue listings and per-month event views,
// cached for a short TTL and invalidated when a reconcile run changes a
// venue.
//
// # Components
//
//   - Reconciler: Drives full reconciliation runs, one venue at a time.
//   - Pipeline: Reconciles one venue's candidate batch.
//   - Matcher: Fuzzy duplicate/conflict classification.
//   - Archiver: Uploads run reports to object storage.
//   - Service: Read-side queries behind the month cache.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /calendar/venues : List all venues.
//   - GET /calendar/venues/:id/events?month=YYYY-MM : One venue's month view.
package calendar
