// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

var (
	blockStoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_store",
		Name:      "operations_total",
		Help:      "Count of block index and block file operations.",
	}, []string{"operation", "coin", "network", "status"})
	blockStoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "block_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of block index and block file operations.",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "coin", "network", "status"})
)

// BlockStore tracks metrics for reads against the node's on-disk store.
type BlockStore struct {
	coin    model.Coin
	network model.Network
}

// NewBlockStore constructs a metrics collector for block store reads.
func NewBlockStore(coin model.Coin, network model.Network) *BlockStore {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &BlockStore{coin: coin, network: network}
}

// Observe records a single store operation outcome and duration.
func (m BlockStore) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)

	blockStoreOperationsTotal.WithLabelValues(operation, string(m.coin), string(m.network), status).Inc()
	blockStoreOperationDuration.WithLabelValues(operation, string(m.coin), string(m.network), status).Observe(time.Since(started).Seconds())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
