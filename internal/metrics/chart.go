package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chartSamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "samples_total",
		Help:      "Count of chart requests.",
	}, []string{"status", "cached"})

	chartSampleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "sample_duration_seconds",
		Help:      "Duration of chart requests.",
		Buckets:   durationBuckets,
	}, []string{"status", "cached"})

	chartPoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "points",
		Help:      "Points returned per chart.",
		Buckets:   prometheus.ExponentialBuckets(2, 2, 10), // 2..1024
	})
)

// Chart tracks chart query metrics.
type Chart struct{}

func NewChart() *Chart {
	return &Chart{}
}

func (m Chart) ObserveSample(err error, points int, cached bool, started time.Time) {
	st := status(err)
	c := strconv.FormatBool(cached)
	chartSamplesTotal.WithLabelValues(st, c).Inc()
	chartSampleDuration.WithLabelValues(st, c).Observe(time.Since(started).Seconds())
	if err == nil {
		chartPoints.Observe(float64(points))
	}
}
