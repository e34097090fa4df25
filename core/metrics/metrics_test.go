package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCandidateOutcomeCounter(t *testing.T) {
	counter := CandidatesTotal.WithLabelValues("empty-bottle", OutcomeCreated)

	before := testutil.ToFloat64(counter)
	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCircuitOpenCounterPerOperation(t *testing.T) {
	a := CircuitOpenTotal.WithLabelValues("store.create_event")
	b := CircuitOpenTotal.WithLabelValues("extract.candidates")

	beforeA := testutil.ToFloat64(a)
	beforeB := testutil.ToFloat64(b)
	a.Inc()

	assert.Equal(t, beforeA+1, testutil.ToFloat64(a))
	assert.Equal(t, beforeB, testutil.ToFloat64(b))
}
