package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveSnapshotsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot_archive",
		Name:      "archived_total",
		Help:      "Count of snapshots written to the archive.",
	})

	archiveDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot_archive",
		Name:      "dropped_total",
		Help:      "Count of snapshots not archived, by reason.",
	}, []string{"reason"})
)

// SnapshotArchive tracks the batched snapshot archive.
type SnapshotArchive struct{}

func NewSnapshotArchive() *SnapshotArchive {
	return &SnapshotArchive{}
}

func (m SnapshotArchive) ObserveArchived(count int) {
	archiveSnapshotsTotal.Add(float64(count))
}

func (m SnapshotArchive) ObserveDropped(count int, reason string) {
	archiveDroppedTotal.WithLabelValues(reason).Add(float64(count))
}
