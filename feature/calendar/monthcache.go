package calendar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gig-calendar/core/metrics"
	"gig-calendar/feature/calendar/models"
	"gig-calendar/feature/calendar/store"

	"golang.org/x/sync/singleflight"
)

// monthEntry is one cached month view.
type monthEntry struct {
	events []models.Event
	built  time.Time
}

// monthCache caches month views in front of the store, with singleflight
// protection so a burst of identical lookups builds the view once. A TTL
// of zero disables caching entirely.
type monthCache struct {
	st  store.Store
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]monthEntry
	sf      singleflight.Group

	now func() time.Time
}

func newMonthCache(st store.Store, ttl time.Duration) *monthCache {
	return &monthCache{
		st:      st,
		ttl:     ttl,
		entries: make(map[string]monthEntry),
		now:     time.Now,
	}
}

func monthKey(venueID uint, month time.Time) string {
	return fmt.Sprintf("%d|%s", venueID, month.Format("2006-01"))
}

func (c *monthCache) expired(entry monthEntry) bool {
	return c.now().Sub(entry.built) > c.ttl
}

// Get returns the venue's events for the month containing the anchor.
func (c *monthCache) Get(ctx context.Context, venueID uint, month time.Time) ([]models.Event, error) {
	if c.ttl <= 0 {
		return c.st.GetEventsInMonth(ctx, venueID, month)
	}

	key := monthKey(venueID, month)

	// Fast path: fresh entry already cached.
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(entry) {
		metrics.MonthCacheRequests.WithLabelValues("hit").Inc()
		return entry.events, nil
	}

	metrics.MonthCacheRequests.WithLabelValues("miss").Inc()

	// Slow path: build through singleflight to prevent stampedes.
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight.
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(entry) {
			return entry.events, nil
		}

		events, err := c.st.GetEventsInMonth(ctx, venueID, month)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = monthEntry{events: events, built: c.now()}
		c.mu.Unlock()

		return events, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.Event), nil
}

// Invalidate drops every cached month for the venue. Runs call it after
// writing new events so readers never see a reconciled venue go stale for
// a full TTL.
func (c *monthCache) Invalidate(venueID uint) {
	prefix := fmt.Sprintf("%d|", venueID)

	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
