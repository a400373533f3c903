package transit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values for index mutations.
const (
	opAdd    = "add"
	opRemove = "remove"
)

// Metric definitions with appropriate labels.
var (
	// dispatchesTotal tracks dispatches by outcome (dispatched, missed, aborted).
	dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_dispatches_total",
		Help: "Total number of message dispatches by outcome (dispatched, missed or aborted)",
	}, []string{"outcome"})

	// transitionMutationsTotal tracks committed index mutations by operation.
	transitionMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_transition_mutations_total",
		Help: "Total number of committed transition index mutations by operation (add or remove)",
	}, []string{"operation"})

	// statesPrunedTotal tracks orphan states removed by pruning.
	statesPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transit_states_pruned_total",
		Help: "Total number of orphan states removed by pruning",
	})
)
