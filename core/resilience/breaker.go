package resilience

import (
	"sync"
	"time"
)

// Breaker is a consecutive-failure circuit breaker. It trips once the
// failure count reaches threshold and refuses calls until cooldown has
// passed since the most recent failure. The first call allowed after the
// cooldown re-closes the breaker before it runs: if the downstream is
// still broken, that call's failure starts tripping it again.
type Breaker struct {
	threshold int
	cooldown  time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	now         func() time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed, resetting an expired breaker
// back to closed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.threshold {
		return true
	}
	if b.now().Sub(b.lastFailure) >= b.cooldown {
		b.failures = 0
		return true
	}
	return false
}

// Success resets the consecutive failure count.
func (b *Breaker) Success() {
	b.mu.Lock()
	b.failures = 0
	b.mu.Unlock()
}

// Failure records a failed attempt.
func (b *Breaker) Failure() {
	b.mu.Lock()
	b.failures++
	b.lastFailure = b.now()
	b.mu.Unlock()
}

// Open reports whether the breaker is currently refusing calls.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures >= b.threshold && b.now().Sub(b.lastFailure) < b.cooldown
}
