package metrics

import (
	"time"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingestionRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "runs_total",
		Help:      "Count of ingestion runs by tier.",
	}, []string{"tier", "status"})

	ingestionRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "run_duration_seconds",
		Help:      "Duration of ingestion runs.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"tier", "status"})

	ingestionEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "events_total",
		Help:      "Count of newly stored events by kind.",
	}, []string{"kind"})

	ingestionMalformedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "malformed_events_total",
		Help:      "Count of logs skipped because they could not be decoded.",
	}, []string{"kind"})

	ingestionBusyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "busy_total",
		Help:      "Count of runs skipped because the tier was already being ingested.",
	}, []string{"tier"})

	ingestionBusyQueuePosition = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingestion",
		Name:      "busy_queue_position",
		Help:      "Queue position reported by the last busy run.",
	}, []string{"tier"})
)

// IngestionRun tracks ingestion run outcomes.
type IngestionRun struct{}

func NewIngestionRun() *IngestionRun {
	return &IngestionRun{}
}

func (m IngestionRun) ObserveRun(tier model.Tier, err error, started time.Time) {
	st := status(err)
	ingestionRunsTotal.WithLabelValues(string(tier), st).Inc()
	ingestionRunDuration.WithLabelValues(string(tier), st).Observe(time.Since(started).Seconds())
}

func (m IngestionRun) ObserveEvents(kind model.EventKind, count int) {
	if count <= 0 {
		return
	}
	ingestionEventsTotal.WithLabelValues(string(kind)).Add(float64(count))
}

func (m IngestionRun) ObserveMalformed(kind model.EventKind) {
	ingestionMalformedTotal.WithLabelValues(string(kind)).Inc()
}

func (m IngestionRun) ObserveBusy(tier model.Tier, queuePosition int) {
	ingestionBusyTotal.WithLabelValues(string(tier)).Inc()
	ingestionBusyQueuePosition.WithLabelValues(string(tier)).Set(float64(queuePosition))
}
