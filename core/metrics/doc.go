// Package metrics defines the Prometheus collectors for the service.
//
// Collectors are registered on the default registry at package load and
// exposed by the start command under /metrics. Reconcile runs record
// per-venue candidate outcomes and run durations; the resilience layer's
// refusals surface as circuit_open_total.
package metrics
