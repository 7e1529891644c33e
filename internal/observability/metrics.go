package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	WSConnections   prometheus.Gauge
	EventsPublished *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		WSConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "salon_ws_connections",
			Help: "Currently open websocket connections.",
		}),
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_events_published_total",
			Help: "Domain events published to the broker, by outcome.",
		}, []string{"event", "outcome"}),
	}
}
