package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "requests_total",
		Help:      "Count of ledger RPC requests.",
	}, []string{"method", "chain", "status"})

	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of ledger RPC requests.",
		Buckets:   durationBuckets,
	}, []string{"method", "chain", "status"})
)

// RPCClient tracks metrics for ledger RPC calls.
type RPCClient struct {
	chain string
}

// NewRPCClient constructs an RPCClient collector labelled with the chain name.
func NewRPCClient(chain string) *RPCClient {
	if chain == "" {
		chain = "unknown"
	}
	return &RPCClient{chain: chain}
}

func (m RPCClient) Observe(method string, err error, started time.Time) {
	st := status(err)
	rpcRequestsTotal.WithLabelValues(method, m.chain, st).Inc()
	rpcRequestDuration.WithLabelValues(method, m.chain, st).Observe(time.Since(started).Seconds())
}
