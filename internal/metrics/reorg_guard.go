package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reorgSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reorg_guard",
		Name:      "syncs_total",
		Help:      "Count of cursor sync checks.",
	}, []string{"status"})

	reorgSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reorg_guard",
		Name:      "sync_duration_seconds",
		Help:      "Duration of cursor sync checks.",
		Buckets:   durationBuckets,
	}, []string{"status"})

	reorgRollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reorg_guard",
		Name:      "rollbacks_total",
		Help:      "Count of rollbacks after a detected reorganization.",
	})

	reorgRollbackDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reorg_guard",
		Name:      "rollback_depth_blocks",
		Help:      "Blocks between the previous cursor and the agreement point.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	})

	reorgRolledBackRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reorg_guard",
		Name:      "rolled_back_rows_total",
		Help:      "Count of rows removed or reverted by rollbacks.",
	})
)

// ReorgGuard tracks cursor syncs and rollbacks.
type ReorgGuard struct{}

func NewReorgGuard() *ReorgGuard {
	return &ReorgGuard{}
}

func (m ReorgGuard) ObserveSync(err error, started time.Time) {
	st := status(err)
	reorgSyncTotal.WithLabelValues(st).Inc()
	reorgSyncDuration.WithLabelValues(st).Observe(time.Since(started).Seconds())
}

func (m ReorgGuard) ObserveRollback(depth uint64, rows int64) {
	reorgRollbacksTotal.Inc()
	reorgRollbackDepth.Observe(float64(depth))
	reorgRolledBackRows.Add(float64(rows))
}
