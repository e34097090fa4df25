package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "gigcal"

// Outcome label values for CandidatesTotal. One outcome is recorded per
// candidate per run.
const (
	OutcomeCreated   = "created"
	OutcomeConflict  = "conflict"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeUnparsed  = "unparsed"
	OutcomeStale     = "stale"
	OutcomeError     = "error"
)

var (
	// CandidatesTotal counts processed candidates by venue and outcome.
	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "candidates_total",
			Help:      "Candidates processed, by venue and outcome.",
		},
		[]string{"venue", "outcome"},
	)

	// RunsTotal counts venue reconcile runs by final status.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "runs_total",
			Help:      "Venue reconcile runs, by status (ok, error, aborted).",
		},
		[]string{"venue", "status"},
	)

	// RunDuration observes the wall time of one venue reconcile run.
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one venue reconcile run.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"venue"},
	)

	// CircuitOpenTotal counts calls refused by an open circuit.
	CircuitOpenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "circuit_open_total",
			Help:      "Calls refused because an operation's circuit was open.",
		},
		[]string{"operation"},
	)

	// MonthCacheRequests counts month view lookups by cache result.
	MonthCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "month_cache_requests_total",
			Help:      "Month view lookups, by result (hit, miss).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		CandidatesTotal,
		RunsTotal,
		RunDuration,
		CircuitOpenTotal,
		MonthCacheRequests,
	)
}
