package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	modelsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autotune",
			Subsystem: "run",
			Name:      "models_total",
			Help:      "Models reaching a terminal state, by status",
		},
		[]string{"status"},
	)

	checkpointFlushes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "autotune",
			Subsystem: "run",
			Name:      "checkpoint_flushes_total",
			Help:      "Successful checkpoint flushes",
		},
	)
)

func init() {
	prometheus.MustRegister(modelsTotal, checkpointFlushes)
}
