package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

var (
	readerLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "reader",
		Name:      "loads_total",
		Help:      "Count of block index loads.",
	}, []string{"operation", "coin", "network", "status"})

	readerLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "reader",
		Name:      "load_duration_seconds",
		Help:      "Duration of loading the block index and selecting the best chain.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"operation", "coin", "network", "status"})

	readerHeaderHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "reader",
		Name:      "header_height",
		Help:      "Greatest height among known headers.",
	}, []string{"coin", "network"})

	readerValidatedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "reader",
		Name:      "validated_height",
		Help:      "Height of the best fully validated tip, -1 when there is none.",
	}, []string{"coin", "network"})

	readerIBDStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "reader",
		Name:      "ibd_status",
		Help:      "Set to 1 for the current sync state and 0 for the others.",
	}, []string{"coin", "network", "state"})
)

var ibdStates = []chain.IBDStatus{chain.NoData, chain.InIBD, chain.Synced}

// Reader tracks load outcomes and chain heights of a block index reader.
type Reader struct {
	coin    model.Coin
	network model.Network
}

// NewReader constructs a Reader with defaults.
func NewReader(coin model.Coin, network model.Network) *Reader {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Reader{coin: coin, network: network}
}

// ObserveLoad records an initialize or refresh outcome and duration.
func (m Reader) ObserveLoad(operation string, err error, started time.Time) {
	status := statusLabel(err)
	readerLoadsTotal.WithLabelValues(operation, string(m.coin), string(m.network), status).Inc()
	readerLoadDuration.WithLabelValues(operation, string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveChain publishes the heights and sync state of the latest load.
func (m Reader) ObserveChain(headerHeight, validatedHeight int32, status chain.IBDStatus) {
	readerHeaderHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(headerHeight))
	readerValidatedHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(validatedHeight))
	for _, state := range ibdStates {
		value := 0.0
		if state == status {
			value = 1
		}
		readerIBDStatus.WithLabelValues(string(m.coin), string(m.network), state.String()).Set(value)
	}
}
