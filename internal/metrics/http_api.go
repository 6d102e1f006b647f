package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "http_api",
		Name:      "requests_total",
		Help:      "Count of HTTP API requests.",
	}, []string{"route", "method", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "http_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

// HTTPAPI tracks request metrics of the reader HTTP API.
type HTTPAPI struct{}

// NewHTTPAPI constructs an HTTPAPI metrics collector.
func NewHTTPAPI() *HTTPAPI {
	return &HTTPAPI{}
}

// ObserveRequest records a served request. Unmatched routes are reported as "unknown".
func (m HTTPAPI) ObserveRequest(route, method string, code int, started time.Time) {
	if route == "" {
		route = "unknown"
	}
	labels := []string{route, method, strconv.Itoa(code)}
	httpRequestsTotal.WithLabelValues(labels...).Inc()
	httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}
