package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	coordinatorOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "operations_total",
		Help:      "Count of lock coordinator operations.",
	}, []string{"operation", "status"})

	coordinatorOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "operation_duration_seconds",
		Help:      "Duration of lock coordinator operations.",
		Buckets:   durationBuckets,
	}, []string{"operation", "status"})

	coordinatorContentionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "contention_total",
		Help:      "Count of acquire calls that had to queue.",
	}, []string{"resource"})

	coordinatorQueuePosition = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "queue_position",
		Help:      "Queue position assigned to contended acquire calls.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	}, []string{"resource"})
)

// Coordinator tracks lock coordinator activity.
type Coordinator struct{}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

func (m Coordinator) Observe(operation string, err error, started time.Time) {
	st := status(err)
	coordinatorOperationsTotal.WithLabelValues(operation, st).Inc()
	coordinatorOperationDuration.WithLabelValues(operation, st).Observe(time.Since(started).Seconds())
}

func (m Coordinator) ObserveContention(resourceKey string, queuePosition int) {
	class := resourceClass(resourceKey)
	coordinatorContentionTotal.WithLabelValues(class).Inc()
	coordinatorQueuePosition.WithLabelValues(class).Observe(float64(queuePosition))
}
