package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

var (
	exporterSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "sync_total",
		Help:      "Count of exporter sync passes.",
	}, []string{"coin", "network", "status"})

	exporterSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "sync_duration_seconds",
		Help:      "Duration of an exporter sync pass.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	exporterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "process_batch_total",
		Help:      "Count of exported block batches.",
	}, []string{"coin", "network", "status"})

	exporterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of reading and exporting a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	exporterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "process_batch_size",
		Help:      "Number of heights exported per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	exporterReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_exporter",
		Name:      "reorg_depth",
		Help:      "Number of exported heights rewound after the best chain switched branches.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
	}, []string{"coin", "network"})
)

// Exporter tracks metrics for the index exporter pipeline.
type Exporter struct {
	coin    model.Coin
	network model.Network
}

// NewExporter constructs an Exporter with defaults.
func NewExporter(coin model.Coin, network model.Network) *Exporter {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Exporter{coin: coin, network: network}
}

// ObserveSync records one refresh-and-export pass.
func (m Exporter) ObserveSync(err error, started time.Time) {
	status := statusLabel(err)
	exporterSyncTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	exporterSyncDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records the export of a batch of heights.
func (m Exporter) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := statusLabel(err)
	exporterProcessBatchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	exporterProcessBatchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	exporterProcessBatchSize.WithLabelValues(string(m.coin), string(m.network)).
		Observe(float64(heights))
}

// ObserveReorg records how many exported heights were rewound.
func (m Exporter) ObserveReorg(depth int) {
	exporterReorgDepth.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(depth))
}
