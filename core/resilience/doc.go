// Package resilience wraps store and network calls in retry and circuit
// breaker behavior.
//
// Venue scrapes run unattended, so a flaky database or object store must
// not kill a whole run. The Executor retries transient failures with
// exponential backoff and keeps one consecutive-failure circuit breaker
// per operation name. When a breaker trips, further calls fail
// immediately with CircuitOpenError until a cooldown has passed; the
// first call after the cooldown optimistically re-closes the breaker and
// probes the downstream again.
//
// Errors marked permanent (via Permanent or by implementing
// `Permanent() bool`) are never retried and never counted by a breaker:
// a validation failure will not get better on the third try.
package resilience
