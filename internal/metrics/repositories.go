package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of storage operations.",
	}, []string{"store", "operation", "status"})

	repositoryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of storage operations.",
		Buckets:   durationBuckets,
	}, []string{"store", "operation", "status"})
)

type repository struct {
	store string
}

func (m repository) Observe(operation string, err error, started time.Time) {
	st := status(err)
	repositoryOperationsTotal.WithLabelValues(m.store, operation, st).Inc()
	repositoryOperationDuration.WithLabelValues(m.store, operation, st).Observe(time.Since(started).Seconds())
}

// PostgresRepository tracks metrics for Postgres repository operations.
type PostgresRepository struct{ repository }

func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{repository{store: "postgres"}}
}

// ClickhouseRepository tracks metrics for ClickHouse archive operations.
type ClickhouseRepository struct{ repository }

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{repository{store: "clickhouse"}}
}

// RedisCache tracks metrics for chart cache operations.
type RedisCache struct{ repository }

func NewRedisCache() *RedisCache {
	return &RedisCache{repository{store: "redis"}}
}
