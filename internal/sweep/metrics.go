package sweep

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	measurementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autotune",
			Subsystem: "sweep",
			Name:      "measurements_total",
			Help:      "Total load-test measurements, by status",
		},
		[]string{"status"},
	)

	measurementDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "autotune",
			Subsystem: "sweep",
			Name:      "measurement_duration_seconds",
			Help:      "Wall-clock duration of one load-test call",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(measurementsTotal, measurementDuration)
}
