package resilience

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Executor runs operations with retry, exponential backoff and a circuit
// breaker per operation name.
//
// Attempt n waits BaseDelay * 2^(n-1) before attempt n+1. The breaker is
// consulted once, before the first attempt: a call that has started its
// retry budget finishes it even when a failure trips the breaker partway
// through. The open circuit then rejects subsequent calls, not this one.
type Executor struct {
	cfg    Config
	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	breakers map[string]*Breaker
	shared   *Breaker
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for retry and exhaustion warnings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithSharedBreaker makes a single breaker govern every operation instead
// of one breaker per operation name.
func WithSharedBreaker(b *Breaker) Option {
	return func(e *Executor) { e.shared = b }
}

// NewExecutor creates an Executor from cfg, substituting defaults for
// unusable values.
func NewExecutor(cfg Config, opts ...Option) *Executor {
	e := &Executor{
		cfg:      cfg.withDefaults(),
		logger:   zap.NewNop(),
		sleep:    sleepContext,
		breakers: make(map[string]*Breaker),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) breakerFor(operation string) *Breaker {
	if e.shared != nil {
		return e.shared
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.breakers[operation]
	if !ok {
		b = NewBreaker(e.cfg.BreakerThreshold, e.cfg.BreakerTimeout())
		e.breakers[operation] = b
	}
	return b
}

// Do runs op under the named operation's breaker and retry budget.
// It returns a *CircuitOpenError without invoking op when the circuit is
// open, the original error when op fails permanently or exhausts its
// attempts, and the context error when ctx is cancelled during a backoff.
func (e *Executor) Do(ctx context.Context, operation string, op func(context.Context) error) error {
	br := e.breakerFor(operation)
	if !br.Allow() {
		return &CircuitOpenError{Operation: operation}
	}

	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxRetries; attempt++ {
		err := op(ctx)
		if err == nil {
			br.Success()
			return nil
		}
		if IsPermanent(err) {
			return err
		}

		br.Failure()
		lastErr = err

		if attempt == e.cfg.MaxRetries {
			break
		}

		delay := e.cfg.BaseDelay() << (attempt - 1)
		e.logger.Warn("operation failed, backing off",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))
		if serr := e.sleep(ctx, delay); serr != nil {
			return serr
		}
	}

	e.logger.Warn("operation exhausted retries",
		zap.String("operation", operation),
		zap.Int("attempts", e.cfg.MaxRetries),
		zap.Error(lastErr))
	return lastErr
}

// Execute runs op through exec.Do and returns its value. A method cannot
// declare type parameters, so this lives at package level.
func Execute[T any](ctx context.Context, exec *Executor, operation string, op func(context.Context) (T, error)) (T, error) {
	var out T
	err := exec.Do(ctx, operation, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// sleepContext waits for d unless ctx is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
